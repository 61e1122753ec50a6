/*
 * record_test.go
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
	"testing"

	v3 "github.com/rmera/qm9/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestValidate(t *testing.T) {
	rec := testRecord(t, []Element{C, O}, coordsFor(2, 0))
	require.NoError(t, rec.Validate())

	rec.Segments = []int{1}
	assert.ErrorContains(t, rec.Validate(), "segments add to 1")
	rec.Segments = []int{2}

	rec.Edges = &Edges{Src: []int{0}, Dst: []int{2}}
	assert.ErrorContains(t, rec.Validate(), EdgeOutOfRange)
	rec.Edges = CompleteEdges(2)

	var r *Record
	assert.Error(t, r.Validate())
}

func TestValidateContext(t *testing.T) {
	ctxPos := func(m int) *v3.Matrix {
		pos, err := v3.NewMatrix(coordsFor(m, 50))
		require.NoError(t, err)
		return pos
	}
	rec := testRecord(t, []Element{C, O}, coordsFor(2, 0))
	rec.Context = &Context{
		Species:   mat.NewDense(2, NumElements, append(H.OneHot(), H.OneHot()...)),
		Positions: ctxPos(2),
		Edges:     &Edges{Src: []int{0, 1, 1}, Dst: []int{2, 2, 3}},
	}
	require.NoError(t, rec.Validate())

	cases := map[string]*Context{
		"destination among the regular atoms": {Positions: ctxPos(2), Edges: &Edges{Src: []int{0}, Dst: []int{1}}},
		"destination past the context":        {Positions: ctxPos(2), Edges: &Edges{Src: []int{0}, Dst: []int{4}}},
		"source out of range":                 {Positions: ctxPos(2), Edges: &Edges{Src: []int{2}, Dst: []int{2}}},
		"rows of different length":            {Positions: ctxPos(1), Edges: &Edges{Src: []int{0, 1}, Dst: []int{2}}},
		"species and positions disagree":      {Species: mat.NewDense(1, NumElements, H.OneHot()), Positions: ctxPos(2)},
		"species of the wrong width":          {Species: mat.NewDense(1, 3, nil), Positions: ctxPos(1)},
	}
	for name, ctx := range cases {
		t.Run(name, func(t *testing.T) {
			rec.Context = ctx
			assert.Error(t, rec.Validate())
		})
	}

	//a collated batch keeps the convention
	a := testRecord(t, []Element{C, H}, coordsFor(2, 0))
	a.Context = &Context{Positions: ctxPos(1), Edges: &Edges{Src: []int{0, 1}, Dst: []int{2, 2}}}
	b := testRecord(t, []Element{N, H, H}, coordsFor(3, 0))
	b.Context = &Context{Positions: ctxPos(2), Edges: &Edges{Src: []int{0, 2}, Dst: []int{3, 4}}}
	require.NoError(t, a.Validate())
	require.NoError(t, b.Validate())
	batch, err := Collate([]*Record{a, b})
	require.NoError(t, err)
	assert.NoError(t, batch.Validate())
}
