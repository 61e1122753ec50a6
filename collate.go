/*
 * collate.go, part of qm9.
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

//Collate merges records into a single Record where the atoms of all the
//records share one index space. The atom j of record i gets the index
//offsets[i]+j, where offsets[i] is the number of atoms in all the records
//before i. Edges are shifted accordingly, and the Segments of the records
//are concatenated, so the offsets can be recovered with Record.Offsets.
//Context edges are shifted on each side independently: the source side like
//the regular edges, and the destination side so that, in the result, the
//context atoms come after all the regular atoms of the batch, in record order.
//Every optional field (EdgeAttrs, GraphAttrs, Context) must be present either
//in all the records, or in none of them. Records without atoms are rejected.
//The records are not modified.
func Collate(records []*Record) (*Record, error) {
	if len(records) == 0 {
		return nil, Error{EmptyBatch, []string{"Collate"}, true}
	}
	if err := checkCollatable(records); err != nil {
		return nil, err
	}
	k := len(records)
	ret := &Record{Segments: make([]int, 0, k)}
	offsets := make([]int, k)
	total := 0
	for i, r := range records {
		offsets[i] = total
		total += r.Len()
		if len(r.Segments) == 0 {
			ret.Segments = append(ret.Segments, r.Len())
		} else {
			ret.Segments = append(ret.Segments, r.Segments...)
		}
	}
	var err error
	species := make([]*mat.Dense, k)
	pos := make([]*v3.Matrix, k)
	for i, r := range records {
		species[i] = r.Species
		pos[i] = r.Positions
	}
	if ret.Species, err = stackDense(species); err != nil {
		return nil, decorate(err, "Collate: species")
	}
	ret.Positions = v3.Zeros(total)
	ret.Positions.Stack(pos...)

	edges := make([]*Edges, k)
	for i, r := range records {
		if r.Edges != nil {
			edges[i] = r.Edges.Shifted(offsets[i], offsets[i])
		}
	}
	ret.Edges = catEdges(edges)

	if records[0].EdgeAttrs != nil {
		if ret.EdgeAttrs, err = stackDense(pick(records, func(r *Record) *mat.Dense { return r.EdgeAttrs })); err != nil {
			return nil, decorate(err, "Collate: edge attributes")
		}
	}
	if records[0].GraphAttrs != nil {
		if ret.GraphAttrs, err = stackDense(pick(records, func(r *Record) *mat.Dense { return r.GraphAttrs })); err != nil {
			return nil, decorate(err, "Collate: graph attributes")
		}
	}
	if records[0].Context != nil {
		if ret.Context, err = collateContexts(records, offsets, total); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

//collateContexts merges the contexts of records. total is the number of
//regular atoms in the batch, offsets the index of the first regular atom
//of each record.
func collateContexts(records []*Record, offsets []int, total int) (*Context, error) {
	k := len(records)
	ret := new(Context)
	ctxTotal := 0
	ctxOffsets := make([]int, k)
	pos := make([]*v3.Matrix, k)
	for i, r := range records {
		ctxOffsets[i] = ctxTotal
		ctxTotal += r.Context.Len()
		pos[i] = r.Context.Positions
	}
	var err error
	first := records[0].Context
	if first.Species != nil {
		if ret.Species, err = stackDense(pickCtx(records, func(c *Context) *mat.Dense { return c.Species })); err != nil {
			return nil, decorate(err, "Collate: context species")
		}
	}
	if first.Positions != nil {
		ret.Positions = v3.Zeros(ctxTotal)
		ret.Positions.Stack(pos...)
	}
	if first.Edges != nil {
		edges := make([]*Edges, k)
		for i, r := range records {
			n := r.Len()
			edges[i] = r.Context.Edges.Shifted(offsets[i], total+ctxOffsets[i]-n)
		}
		ret.Edges = catEdges(edges)
	}
	if first.EdgeAttrs != nil {
		if ret.EdgeAttrs, err = stackDense(pickCtx(records, func(c *Context) *mat.Dense { return c.EdgeAttrs })); err != nil {
			return nil, decorate(err, "Collate: context edge attributes")
		}
	}
	if first.GraphAttrs != nil {
		if ret.GraphAttrs, err = stackDense(pickCtx(records, func(c *Context) *mat.Dense { return c.GraphAttrs })); err != nil {
			return nil, decorate(err, "Collate: context graph attributes")
		}
	}
	return ret, nil
}

//checkCollatable returns an error if any record is nil, has no atoms
//or is inconsistent, or if an optional field is set in some records and not in others.
func checkCollatable(records []*Record) error {
	first := records[0]
	if first == nil {
		return Error{fmt.Sprintf("%s at position 0", NilRecord), []string{"Collate"}, true}
	}
	for i, r := range records {
		if r == nil {
			return Error{fmt.Sprintf("%s at position %d", NilRecord, i), []string{"Collate"}, true}
		}
		if r.Len() == 0 || r.Species == nil {
			return Error{fmt.Sprintf("%s at position %d", EmptyRecord, i), []string{"Collate"}, true}
		}
		if ns, _ := r.Species.Dims(); ns != r.Len() {
			return Error{fmt.Sprintf("%s at position %d", InconsistentRecord, i), []string{"Collate"}, true}
		}
		mixed := ""
		switch {
		case (r.EdgeAttrs == nil) != (first.EdgeAttrs == nil):
			mixed = "edge attributes"
		case (r.GraphAttrs == nil) != (first.GraphAttrs == nil):
			mixed = "graph attributes"
		case (r.Context == nil) != (first.Context == nil):
			mixed = "context"
		case r.Context != nil:
			mixed = mixedContext(r.Context, first.Context)
		}
		if mixed != "" {
			return Error{fmt.Sprintf("%s: %s (position %d)", MixedOptional, mixed, i), []string{"Collate"}, true}
		}
	}
	return nil
}

func mixedContext(c, first *Context) string {
	switch {
	case (c.Species == nil) != (first.Species == nil):
		return "context species"
	case (c.Positions == nil) != (first.Positions == nil):
		return "context positions"
	case (c.Edges == nil) != (first.Edges == nil):
		return "context edges"
	case (c.EdgeAttrs == nil) != (first.EdgeAttrs == nil):
		return "context edge attributes"
	case (c.GraphAttrs == nil) != (first.GraphAttrs == nil):
		return "context graph attributes"
	}
	return ""
}

func pick(records []*Record, f func(*Record) *mat.Dense) []*mat.Dense {
	ret := make([]*mat.Dense, len(records))
	for i, r := range records {
		ret[i] = f(r)
	}
	return ret
}

func pickCtx(records []*Record, f func(*Context) *mat.Dense) []*mat.Dense {
	ret := make([]*mat.Dense, len(records))
	for i, r := range records {
		ret[i] = f(r.Context)
	}
	return ret
}

//stackDense puts the matrices in ms one over the other in a new Dense.
//All of them must have the same number of columns.
func stackDense(ms []*mat.Dense) (*mat.Dense, error) {
	rows := 0
	_, cols := ms[0].Dims()
	for _, m := range ms {
		r, c := m.Dims()
		if c != cols {
			return nil, Error{fmt.Sprintf("can't stack matrices with %d and %d columns", cols, c), nil, true}
		}
		rows += r
	}
	ret := mat.NewDense(rows, cols, nil)
	start := 0
	for _, m := range ms {
		r, _ := m.Dims()
		ret.Slice(start, start+r, 0, cols).(*mat.Dense).Copy(m)
		start += r
	}
	return ret, nil
}

//catEdges concatenates the edge lists, skipping nil ones.
//Returns nil if there are no edges at all.
func catEdges(edges []*Edges) *Edges {
	n := 0
	for _, e := range edges {
		n += e.Len()
	}
	if n == 0 {
		return nil
	}
	ret := &Edges{Src: make([]int, 0, n), Dst: make([]int, 0, n)}
	for _, e := range edges {
		if e == nil {
			continue
		}
		ret.Src = append(ret.Src, e.Src...)
		ret.Dst = append(ret.Dst, e.Dst...)
	}
	return ret
}

//decorate adds caller to the trail of err, if err is an Error.
func decorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = e.Decorate(caller)
		return e
	}
	return err
}
