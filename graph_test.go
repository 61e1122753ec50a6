/*
 * graph_test.go
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
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph(t *testing.T) {
	rec := testRecord(t, []Element{C, O, H, H}, coordsFor(4, 0))
	g := rec.Graph()
	assert.Equal(t, 4, g.Nodes().Len())
	assert.Equal(t, 12, g.Edges().Len())
	for i := int64(0); i < 4; i++ {
		for j := int64(0); j < 4; j++ {
			assert.Equal(t, i != j, g.HasEdgeFromTo(i, j))
		}
	}
}

func TestMolecules(t *testing.T) {
	recs := []*Record{
		testRecord(t, []Element{C, O, O}, coordsFor(3, 0)),
		testRecord(t, []Element{F}, coordsFor(1, 0)),
		testRecord(t, []Element{H, H}, coordsFor(2, 0)),
	}
	b, err := Collate(recs)
	require.NoError(t, err)
	mols := b.Molecules()
	require.Len(t, mols, 3)
	for _, m := range mols {
		sort.Ints(m)
	}
	sort.Slice(mols, func(i, j int) bool { return mols[i][0] < mols[j][0] })
	assert.Equal(t, [][]int{{0, 1, 2}, {3}, {4, 5}}, mols)
}
