/*
 * errors.go, part of qm9.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dataset

import "fmt"

//FetchError is returned when the raw archive can't be downloaded.
//StatusCode is 0 if the request never got an answer, in which case Err
//tells why.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (err *FetchError) Error() string {
	if err.StatusCode != 0 {
		return fmt.Sprintf("dataset: fetching %s: status %d", err.URL, err.StatusCode)
	}
	return fmt.Sprintf("dataset: fetching %s: %v", err.URL, err.Err)
}

func (err *FetchError) Unwrap() error { return err.Err }

//IndexOutOfRangeError is returned by the accessors of Cache for an index
//outside [0, Len).
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (err *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("dataset: index %d out of range [0, %d)", err.Index, err.Len)
}

//NotReadyError is returned by the accessors of a Cache that has not
//been successfully ensured.
type NotReadyError struct {
	State State
}

func (err *NotReadyError) Error() string {
	return fmt.Sprintf("dataset: cache is %s, call Ensure first", err.State)
}
