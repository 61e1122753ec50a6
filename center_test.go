/*
 * center_test.go
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

//testRecord builds a record with the given elements and flat coordinates,
//as the XYZ reader would.
func testRecord(t *testing.T, elems []Element, coords []float64) *Record {
	t.Helper()
	species := mat.NewDense(len(elems), NumElements, nil)
	for i, e := range elems {
		species.SetRow(i, e.OneHot())
	}
	pos, err := v3.NewMatrix(coords)
	require.NoError(t, err)
	return &Record{
		Species:   species,
		Positions: pos,
		Edges:     CompleteEdges(len(elems)),
		Segments:  []int{len(elems)},
	}
}

func assertCentered(t *testing.T, m *v3.Matrix) {
	t.Helper()
	mean := m.Mean()
	for j := 0; j < 3; j++ {
		assert.InDelta(t, 0.0, mean.At(0, j), 1e-9)
	}
}

func TestCenter(t *testing.T) {
	rec, err := XYZFileRead(fixture)
	require.NoError(t, err)
	orig := mat.DenseCopyOf(rec.Positions.Dense)

	c := Center(rec.Positions)
	assertCentered(t, c)
	assert.True(t, mat.Equal(orig, rec.Positions), "input modified")

	//Centering only translates.
	d := mat.NewDense(18, 3, nil)
	d.Sub(rec.Positions, c)
	for i := 1; i < 18; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, d.At(0, j), d.At(i, j), 1e-9)
		}
	}
	//Idempotent
	assert.True(t, mat.EqualApprox(c, Center(c), 1e-9))
}

func TestCenterRecord(t *testing.T) {
	rec := testRecord(t, []Element{C, O}, []float64{1, 1, 1, 3, 3, 3})
	ctxpos, err := v3.NewMatrix([]float64{10, 0, 0, 20, 0, 0, 30, 6, 0})
	require.NoError(t, err)
	rec.Context = &Context{Positions: ctxpos}

	c := CenterRecord(rec)
	assertCentered(t, c.Positions)
	assertCentered(t, c.Context.Positions)
	assert.InDelta(t, -1.0, c.Positions.At(0, 0), 1e-12)
	assert.InDelta(t, -10.0, c.Context.Positions.At(0, 0), 1e-12)
	assert.InDelta(t, 4.0, c.Context.Positions.At(2, 1), 1e-12)

	//The original is untouched and the other fields are shared.
	assert.Equal(t, 1.0, rec.Positions.At(0, 0))
	assert.Equal(t, 10.0, rec.Context.Positions.At(0, 0))
	assert.Same(t, rec.Species, c.Species)
	assert.Same(t, rec.Edges, c.Edges)
}

func TestCenterRecordNoContext(t *testing.T) {
	rec := testRecord(t, []Element{H}, []float64{1, 2, 3})
	c := CenterRecord(rec)
	assert.Nil(t, c.Context)
	assert.True(t, mat.Equal(mat.NewDense(1, 3, nil), c.Positions))
}
