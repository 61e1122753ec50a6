/*
 * graph.go, part of qm9.
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
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//Graph returns a Gonum directed graph with one node per atom (the node ID is
//the atom index in the record) and one edge per column of the edge list.
//Self-loops, which the XYZ reader never produces, are skipped.
func (R *Record) Graph() *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for i := 0; i < R.Len(); i++ {
		g.AddNode(simple.Node(i))
	}
	if R.Edges == nil {
		return g
	}
	for k, s := range R.Edges.Src {
		d := R.Edges.Dst[k]
		if s == d {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(s), simple.Node(d)))
	}
	return g
}

//Molecules returns the atom indexes of each weakly connected component of
//the record's graph. For a collated batch of XYZ-read molecules, each
//component is one molecule with more than one atom, or a lone atom.
func (R *Record) Molecules() [][]int {
	g := R.Graph()
	comps := topo.ConnectedComponents(graph.Undirect{G: g})
	ret := make([][]int, 0, len(comps))
	for _, c := range comps {
		ids := make([]int, len(c))
		for i, n := range c {
			ids[i] = int(n.ID())
		}
		ret = append(ret, ids)
	}
	return ret
}
