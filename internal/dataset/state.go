/*
 * state.go, part of qm9.
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

//State is the stage of a Cache. A new Cache is StateEmpty, and ends up
//either StateLoaded, if the processed blob was already there, or
//StatePersisted, after building it.
type State int

const (
	StateEmpty State = iota
	StateFetching
	StateExtracting
	StateParsing
	StatePersisted
	StateLoaded
	StateFailed
)

var stateNames = [...]string{"empty", "fetching", "extracting", "parsing", "persisted", "loaded", "failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

//Ready returns true if the records can be read.
func (s State) Ready() bool {
	return s == StatePersisted || s == StateLoaded
}
