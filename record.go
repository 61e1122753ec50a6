/*
 * record.go, part of qm9.
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

	v3 "github.com/rmera/qm9/v3"
	"gonum.org/v1/gonum/mat"
)

//Edges is an edge list in the form of two rows of atom indexes. The
//edge k goes from Src[k] to Dst[k].
type Edges struct {
	Src []int
	Dst []int
}

//Len returns the number of edges.
func (E *Edges) Len() int {
	if E == nil {
		return 0
	}
	return len(E.Src)
}

//Shifted returns a copy of E with srcOff added to every source index and
//dstOff added to every destination index.
func (E *Edges) Shifted(srcOff, dstOff int) *Edges {
	ret := &Edges{Src: make([]int, len(E.Src)), Dst: make([]int, len(E.Dst))}
	for i, v := range E.Src {
		ret.Src[i] = v + srcOff
	}
	for i, v := range E.Dst {
		ret.Dst[i] = v + dstOff
	}
	return ret
}

//Context is a second point cloud associated with a molecule, indexed
//separately from the molecule's own atoms. All its fields come and go
//together. Context edges go from a molecule atom (Src) to a context atom (Dst);
//in a single record, a context atom k has the index n+k, where n is the
//number of atoms of the molecule.
type Context struct {
	Species    *mat.Dense
	Positions  *v3.Matrix
	Edges      *Edges
	EdgeAttrs  *mat.Dense
	GraphAttrs *mat.Dense
}

//Len returns the number of context atoms.
func (C *Context) Len() int {
	if C == nil || C.Positions == nil {
		return 0
	}
	return C.Positions.NVecs()
}

//Record is the decoded form of one molecule, or a batch of molecules
//collated together. Each row of Species is the one-hot vector of an atom,
//and the same row of Positions are its cartesian coordinates.
//A nil Edges means the record has no edges at all.
//EdgeAttrs, GraphAttrs and Context are never set by the XYZ decoder.
type Record struct {
	Species    *mat.Dense
	Positions  *v3.Matrix
	Edges      *Edges
	EdgeAttrs  *mat.Dense
	GraphAttrs *mat.Dense
	Context    *Context
	//Number of atoms of each molecule in the record, in order.
	Segments []int
}

//Len returns the total number of atoms in the record.
func (R *Record) Len() int {
	if R.Positions == nil {
		return 0
	}
	return R.Positions.NVecs()
}

//NumEdges returns the number of edges in the record.
func (R *Record) NumEdges() int {
	return R.Edges.Len()
}

//NumMolecules returns the number of molecules in the record.
func (R *Record) NumMolecules() int {
	return len(R.Segments)
}

//SegmentLength returns the number of atoms of the molecule i in the record.
func (R *Record) SegmentLength(i int) int {
	return R.Segments[i]
}

//Offsets returns, for each molecule in the record, the index of its first atom.
//The atom j of molecule i has index Offsets()[i]+j in the record.
func (R *Record) Offsets() []int {
	ret := make([]int, len(R.Segments))
	off := 0
	for i, v := range R.Segments {
		ret[i] = off
		off += v
	}
	return ret
}

//Elements returns the elements of all atoms in the record.
func (R *Record) Elements() ([]Element, error) {
	n, _ := R.Species.Dims()
	ret := make([]Element, n)
	for i := 0; i < n; i++ {
		e, err := ElementFromOneHot(mat.Row(nil, i, R.Species))
		if err != nil {
			return nil, err
		}
		ret[i] = e
	}
	return ret, nil
}

//Validate checks the invariants of the record: matching atom counts, segments
//adding up to the atom count, edge indexes in range and valid one-hot species.
//The context, if present, is checked as well.
func (R *Record) Validate() error {
	if R == nil {
		return Error{NilRecord, []string{"Validate"}, true}
	}
	if R.Species == nil || R.Positions == nil {
		return Error{EmptyRecord, []string{"Validate"}, true}
	}
	ns, _ := R.Species.Dims()
	n := R.Positions.NVecs()
	if ns != n {
		return Error{InconsistentRecord, []string{"Validate"}, true}
	}
	total := 0
	for _, v := range R.Segments {
		total += v
	}
	if total != n {
		return Error{fmt.Sprintf("segments add to %d, but the record has %d atoms", total, n), []string{"Validate"}, true}
	}
	if R.Edges != nil {
		if len(R.Edges.Src) != len(R.Edges.Dst) {
			return Error{"edge rows of different length", []string{"Validate"}, true}
		}
		for k := range R.Edges.Src {
			if R.Edges.Src[k] < 0 || R.Edges.Src[k] >= n || R.Edges.Dst[k] < 0 || R.Edges.Dst[k] >= n {
				return Error{fmt.Sprintf("%s: edge %d (%d, %d), %d atoms", EdgeOutOfRange, k, R.Edges.Src[k], R.Edges.Dst[k], n), []string{"Validate"}, true}
			}
		}
	}
	if _, err := R.Elements(); err != nil {
		return err
	}
	if R.Context != nil {
		return R.Context.validate(n)
	}
	return nil
}

//validate checks a context attached to a record with n atoms. Context
//species and positions must agree in rows, and each context edge goes from
//an atom of the record to a context atom, indexed after the n regular ones.
func (C *Context) validate(n int) error {
	m := C.Len()
	if C.Species != nil {
		ns, nc := C.Species.Dims()
		if nc != NumElements {
			return &InvalidOneHotError{Fault: OneHotWidth, Vector: mat.Row(nil, 0, C.Species)}
		}
		if C.Positions != nil && ns != m {
			return Error{"context " + InconsistentRecord, []string{"Validate"}, true}
		}
		m = ns
	}
	if C.Edges == nil {
		return nil
	}
	if len(C.Edges.Src) != len(C.Edges.Dst) {
		return Error{"context edge rows of different length", []string{"Validate"}, true}
	}
	for k, s := range C.Edges.Src {
		d := C.Edges.Dst[k]
		if s < 0 || s >= n || d < n || d >= n+m {
			return Error{fmt.Sprintf("%s: context edge %d (%d, %d), %d atoms, %d context atoms", EdgeOutOfRange, k, s, d, n, m), []string{"Validate"}, true}
		}
	}
	return nil
}
