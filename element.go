/*
 * element.go, part of qm9.
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

//Element is one of the chemical elements present in QM9.
type Element int

//The order of the constants is the order of the entries in the one-hot vectors.
const (
	H Element = iota
	C
	N
	O
	F
)

//NumElements is the width of a one-hot species vector.
const NumElements = 5

var elementSymbols = [NumElements]string{"H", "C", "N", "O", "F"}

//ElementFromSymbol returns the Element for the symbol s, or an
//*UnknownElementError if s is not one of H, C, N, O, F.
func ElementFromSymbol(s string) (Element, error) {
	switch s {
	case "H":
		return H, nil
	case "C":
		return C, nil
	case "N":
		return N, nil
	case "O":
		return O, nil
	case "F":
		return F, nil
	}
	return -1, &UnknownElementError{Symbol: s}
}

//Symbol returns the chemical symbol of the element.
func (e Element) Symbol() string {
	if e < 0 || int(e) >= NumElements {
		return "?"
	}
	return elementSymbols[e]
}

func (e Element) String() string { return e.Symbol() }

//OneHot returns a new one-hot vector for the element.
func (e Element) OneHot() []float64 {
	ret := make([]float64, NumElements)
	ret[e] = 1.0
	return ret
}

//ElementFromOneHot is the inverse of Element.OneHot.
//It fails if v doesn't have NumElements entries, or if it doesn't have
//exactly one nonzero entry, which must be 1.0.
func ElementFromOneHot(v []float64) (Element, error) {
	if len(v) != NumElements {
		return -1, &InvalidOneHotError{Fault: OneHotWidth, Vector: v}
	}
	hot := -1
	for i, val := range v {
		if val == 0 {
			continue
		}
		if val != 1.0 || hot >= 0 {
			return -1, &InvalidOneHotError{Fault: OneHotWeight, Vector: v}
		}
		hot = i
	}
	if hot < 0 {
		return -1, &InvalidOneHotError{Fault: OneHotWeight, Vector: v}
	}
	return Element(hot), nil
}
