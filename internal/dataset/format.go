/*
 * format.go, part of qm9.
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

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/qm9"
	v3 "github.com/rmera/qm9/v3"
	"gonum.org/v1/gonum/mat"
)

//FormatTag identifies the layout of the persisted dataset. Blobs with a
//different tag are rejected.
const FormatTag = "qm9.v1"

//Entry is one record of the dataset, with the stem of the file it came from.
type Entry struct {
	Key    string
	Record *qm9.Record
}

//The persisted document. Matrices are stored row-major, with their shape.
//A nil optional field is stored as null, and comes back as nil.
type document struct {
	Format  string      `json:"format"`
	Entries []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Key    string      `json:"key"`
	Record *jsonRecord `json:"record"`
}

type jsonMatrix struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

type jsonEdges struct {
	Src []int `json:"src"`
	Dst []int `json:"dst"`
}

type jsonContext struct {
	Species    *jsonMatrix `json:"species"`
	Positions  *jsonMatrix `json:"positions"`
	Edges      *jsonEdges  `json:"edges"`
	EdgeAttrs  *jsonMatrix `json:"edge_attrs"`
	GraphAttrs *jsonMatrix `json:"graph_attrs"`
}

type jsonRecord struct {
	Species    *jsonMatrix  `json:"species"`
	Positions  *jsonMatrix  `json:"positions"`
	Edges      *jsonEdges   `json:"edges"`
	EdgeAttrs  *jsonMatrix  `json:"edge_attrs"`
	GraphAttrs *jsonMatrix  `json:"graph_attrs"`
	Context    *jsonContext `json:"context"`
	Segments   []int        `json:"segments"`
}

//Encode writes the entries to w as zstd-compressed JSON.
func Encode(w io.Writer, entries []Entry) error {
	doc := document{Format: FormatTag, Entries: make([]jsonEntry, len(entries))}
	for i, e := range entries {
		if e.Record == nil {
			return fmt.Errorf("dataset: encoding entry %d (%s): nil record", i, e.Key)
		}
		doc.Entries[i] = jsonEntry{Key: e.Key, Record: recordToJSON(e.Record)}
	}
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	if err := json.NewEncoder(zw).Encode(doc); err != nil {
		zw.Close()
		return fmt.Errorf("dataset: encoding: %w", err)
	}
	return zw.Close()
}

//Decode reads entries written by Encode.
func Decode(r io.Reader) ([]Entry, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer zr.Close()
	var doc document
	if err := json.NewDecoder(zr).Decode(&doc); err != nil {
		return nil, fmt.Errorf("dataset: decoding: %w", err)
	}
	if doc.Format != FormatTag {
		return nil, fmt.Errorf("dataset: unknown format %q, expected %q", doc.Format, FormatTag)
	}
	ret := make([]Entry, len(doc.Entries))
	for i, je := range doc.Entries {
		if je.Record == nil {
			return nil, fmt.Errorf("dataset: entry %d (%s) has no record", i, je.Key)
		}
		rec, err := recordFromJSON(je.Record)
		if err != nil {
			return nil, fmt.Errorf("dataset: entry %d (%s): %w", i, je.Key, err)
		}
		ret[i] = Entry{Key: je.Key, Record: rec}
	}
	return ret, nil
}

func denseToJSON(m mat.Matrix) *jsonMatrix {
	r, c := m.Dims()
	ret := &jsonMatrix{Rows: r, Cols: c, Data: make([]float64, 0, r*c)}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ret.Data = append(ret.Data, m.At(i, j))
		}
	}
	return ret
}

//optDense and the other opt* functions keep nil as nil.
func optDense(m *mat.Dense) *jsonMatrix {
	if m == nil {
		return nil
	}
	return denseToJSON(m)
}

func optCoords(m *v3.Matrix) *jsonMatrix {
	if m == nil {
		return nil
	}
	return denseToJSON(m.Dense)
}

func optEdges(e *qm9.Edges) *jsonEdges {
	if e == nil {
		return nil
	}
	return &jsonEdges{Src: e.Src, Dst: e.Dst}
}

func recordToJSON(r *qm9.Record) *jsonRecord {
	ret := &jsonRecord{
		Species:    optDense(r.Species),
		Positions:  optCoords(r.Positions),
		Edges:      optEdges(r.Edges),
		EdgeAttrs:  optDense(r.EdgeAttrs),
		GraphAttrs: optDense(r.GraphAttrs),
		Segments:   r.Segments,
	}
	if r.Context != nil {
		c := r.Context
		ret.Context = &jsonContext{
			Species:    optDense(c.Species),
			Positions:  optCoords(c.Positions),
			Edges:      optEdges(c.Edges),
			EdgeAttrs:  optDense(c.EdgeAttrs),
			GraphAttrs: optDense(c.GraphAttrs),
		}
	}
	return ret
}

func denseFromJSON(m *jsonMatrix) (*mat.Dense, error) {
	if m == nil {
		return nil, nil
	}
	if m.Rows < 1 || m.Cols < 1 || len(m.Data) != m.Rows*m.Cols {
		return nil, fmt.Errorf("matrix of %dx%d with %d elements", m.Rows, m.Cols, len(m.Data))
	}
	return mat.NewDense(m.Rows, m.Cols, m.Data), nil
}

func coordsFromJSON(m *jsonMatrix) (*v3.Matrix, error) {
	if m == nil {
		return nil, nil
	}
	if m.Cols != 3 || len(m.Data) != m.Rows*3 {
		return nil, fmt.Errorf("coordinates of %dx%d with %d elements", m.Rows, m.Cols, len(m.Data))
	}
	return v3.NewMatrix(m.Data)
}

func edgesFromJSON(e *jsonEdges) (*qm9.Edges, error) {
	if e == nil {
		return nil, nil
	}
	if len(e.Src) != len(e.Dst) {
		return nil, fmt.Errorf("edge rows of length %d and %d", len(e.Src), len(e.Dst))
	}
	return &qm9.Edges{Src: e.Src, Dst: e.Dst}, nil
}

func recordFromJSON(j *jsonRecord) (*qm9.Record, error) {
	var err error
	r := &qm9.Record{Segments: j.Segments}
	if r.Species, err = denseFromJSON(j.Species); err != nil {
		return nil, fmt.Errorf("species: %w", err)
	}
	if r.Positions, err = coordsFromJSON(j.Positions); err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	if r.Edges, err = edgesFromJSON(j.Edges); err != nil {
		return nil, fmt.Errorf("edges: %w", err)
	}
	if r.EdgeAttrs, err = denseFromJSON(j.EdgeAttrs); err != nil {
		return nil, fmt.Errorf("edge attributes: %w", err)
	}
	if r.GraphAttrs, err = denseFromJSON(j.GraphAttrs); err != nil {
		return nil, fmt.Errorf("graph attributes: %w", err)
	}
	if j.Context != nil {
		jc := j.Context
		c := new(qm9.Context)
		if c.Species, err = denseFromJSON(jc.Species); err != nil {
			return nil, fmt.Errorf("context species: %w", err)
		}
		if c.Positions, err = coordsFromJSON(jc.Positions); err != nil {
			return nil, fmt.Errorf("context positions: %w", err)
		}
		if c.Edges, err = edgesFromJSON(jc.Edges); err != nil {
			return nil, fmt.Errorf("context edges: %w", err)
		}
		if c.EdgeAttrs, err = denseFromJSON(jc.EdgeAttrs); err != nil {
			return nil, fmt.Errorf("context edge attributes: %w", err)
		}
		if c.GraphAttrs, err = denseFromJSON(jc.GraphAttrs); err != nil {
			return nil, fmt.Errorf("context graph attributes: %w", err)
		}
		r.Context = c
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
