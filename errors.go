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

package qm9

import (
	"fmt"
	"strings"
)

//Error is the general error type of the package, used for shape and collation
//problems. The Decorate method allows adding the names of the functions the
//error goes through without changing its type.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if len(err.deco) == 0 {
		return "qm9: " + err.message
	}
	return fmt.Sprintf("qm9: %s: %s", strings.Join(err.deco, ": "), err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//Message returns the bare message, without the decoration trail.
func (err Error) Message() string { return err.message }

const (
	EmptyBatch         = "no records to collate"
	EmptyRecord        = "record with no atoms"
	InconsistentRecord = "species and positions have different number of atoms"
	MixedOptional      = "optional field present in some records but not in others"
	NilRecord          = "nil record"
	EdgeOutOfRange     = "edge index out of range"
)

//UnknownElementError is returned when a species token is not one of H, C, N, O, F.
type UnknownElementError struct {
	Symbol string
}

func (err *UnknownElementError) Error() string {
	return fmt.Sprintf("qm9: unknown element %q", err.Symbol)
}

//OneHotFault tells why a one-hot vector was rejected.
type OneHotFault int

const (
	OneHotWidth  OneHotFault = iota //the vector doesn't have NumElements entries
	OneHotWeight                    //the vector doesn't have exactly one entry, equal to 1.0
)

func (f OneHotFault) String() string {
	switch f {
	case OneHotWidth:
		return "width"
	case OneHotWeight:
		return "weight"
	}
	return "unknown"
}

//InvalidOneHotError is returned when a species vector can't be mapped back to an element.
type InvalidOneHotError struct {
	Fault  OneHotFault
	Vector []float64
}

func (err *InvalidOneHotError) Error() string {
	switch err.Fault {
	case OneHotWidth:
		return fmt.Sprintf("qm9: invalid one-hot width %d, expected %d", len(err.Vector), NumElements)
	default:
		return fmt.Sprintf("qm9: invalid one-hot vector %v", err.Vector)
	}
}

//ParseError is returned for ill-formed XYZ text. Line is 0-based.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (err *ParseError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("qm9: ill-formed XYZ line %d (%q): %v", err.Line, err.Text, err.Err)
	}
	return fmt.Sprintf("qm9: ill-formed XYZ line %d (%q)", err.Line, err.Text)
}

func (err *ParseError) Unwrap() error { return err.Err }
