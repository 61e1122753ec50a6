/*
 * xyz.go, part of qm9.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package qm9

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/qm9/v3"
	"gonum.org/v1/gonum/mat"
)

//XYZOptions changes the way XYZ files are read.
type XYZOptions struct {
	//If true, the "*^" exponent marker used in some QM9 files is not
	//translated to "e", so coordinates using it fail to parse.
	//This reproduces the behavior of older versions of the reader.
	KeepExponentMarker bool
}

//XYZFileRead reads the xyz file xyzname and returns the corresponding Record.
func XYZFileRead(xyzname string, opts ...XYZOptions) (*Record, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, err
	}
	defer xyzfile.Close()
	return XYZRead(xyzfile, opts...)
}

//XYZStringRead returns the Record for the XYZ-formatted text in str.
func XYZStringRead(str string, opts ...XYZOptions) (*Record, error) {
	return XYZRead(strings.NewReader(str), opts...)
}

//XYZRead reads one molecule in XYZ format from r.
//The first line must start with the number of atoms, N. Anything after it
//in the line is ignored, as is the whole second line. The next N lines contain
//the element symbol and the three cartesian coordinates of each atom. Extra fields
//(for instance, the Mulliken charges in QM9 files) and lines are ignored.
//An element other than H, C, N, O or F gives an *UnknownElementError. Any other
//problem in the text gives a *ParseError.
func XYZRead(r io.Reader, opts ...XYZOptions) (*Record, error) {
	var opt XYZOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	xyz := bufio.NewScanner(r)
	if !xyz.Scan() {
		return nil, &ParseError{Line: 0, Err: scanErr(xyz)}
	}
	line := xyz.Text()
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, &ParseError{Line: 0, Text: line, Err: fmt.Errorf("missing atom count")}
	}
	natoms, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, &ParseError{Line: 0, Text: line, Err: err}
	}
	if natoms < 1 {
		return nil, &ParseError{Line: 0, Text: line, Err: fmt.Errorf("atom count must be positive")}
	}
	if !xyz.Scan() { //We dont care about this line, but it has to be there.
		return nil, &ParseError{Line: 1, Err: scanErr(xyz)}
	}
	species := mat.NewDense(natoms, NumElements, nil)
	coords := make([]float64, natoms*3)
	for i := 0; i < natoms; i++ {
		lnum := i + 2
		if !xyz.Scan() {
			return nil, &ParseError{Line: lnum, Err: scanErr(xyz)}
		}
		line = xyz.Text()
		fields = strings.Fields(line)
		if len(fields) < 4 {
			return nil, &ParseError{Line: lnum, Text: line, Err: fmt.Errorf("expected 4 fields, got %d", len(fields))}
		}
		e, err := ElementFromSymbol(fields[0])
		if err != nil {
			return nil, err
		}
		species.Set(i, int(e), 1.0)
		for j := 0; j < 3; j++ {
			coords[i*3+j], err = parseCoord(fields[j+1], opt.KeepExponentMarker)
			if err != nil {
				return nil, &ParseError{Line: lnum, Text: line, Err: err}
			}
		}
	}
	pos, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, err
	}
	return &Record{
		Species:   species,
		Positions: pos,
		Edges:     CompleteEdges(natoms),
		Segments:  []int{natoms},
	}, nil
}

//scanErr returns the error that stopped the scanner, or io.ErrUnexpectedEOF
//if the text just ended.
func scanErr(s *bufio.Scanner) error {
	if err := s.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}

//parseCoord parses a coordinate. QM9 files write some numbers in
//Mathematica notation, i.e. 1.5*^-6 for 1.5e-6. NaN and infinite
//values are rejected.
func parseCoord(s string, keepMarker bool) (float64, error) {
	if !keepMarker {
		s = strings.Replace(s, "*^", "e", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite coordinate %q", s)
	}
	return v, nil
}

//CompleteEdges returns the edges of a complete graph of n nodes, in both
//directions. All the pairs i<j, in lexicographic order, come first, followed
//by the same pairs reversed. Returns nil if n < 2.
func CompleteEdges(n int) *Edges {
	if n < 2 {
		return nil
	}
	npairs := n * (n - 1) / 2
	src := make([]int, 0, 2*npairs)
	dst := make([]int, 0, 2*npairs)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			src = append(src, i)
			dst = append(dst, j)
		}
	}
	ret := &Edges{Src: append(src, dst...), Dst: append(dst, src...)}
	return ret
}

//XYZFileWrite writes the record rec in an XYZ file with name xyzname which will
//be created for that. If the file exist it will be overwritten.
func XYZFileWrite(xyzname string, rec *Record) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return err
	}
	defer out.Close()
	return XYZWrite(out, rec)
}

//XYZStringWrite returns the XYZ text for the record rec.
func XYZStringWrite(rec *Record) (string, error) {
	var b strings.Builder
	if err := XYZWrite(&b, rec); err != nil {
		return "", err
	}
	return b.String(), nil
}

//XYZWrite writes rec to out in XYZ format: the number of atoms, an empty line,
//and one line per atom with its symbol and coordinates with 3 decimals.
//Only species and positions are written.
func XYZWrite(out io.Writer, rec *Record) error {
	if rec == nil || rec.Species == nil || rec.Positions == nil {
		return Error{EmptyRecord, []string{"XYZWrite"}, true}
	}
	ns, nc := rec.Species.Dims()
	if nc != NumElements {
		return &InvalidOneHotError{Fault: OneHotWidth, Vector: mat.Row(nil, 0, rec.Species)}
	}
	natoms := rec.Positions.NVecs()
	if ns != natoms {
		return Error{InconsistentRecord, []string{"XYZWrite"}, true}
	}
	symbols := make([]string, natoms)
	row := make([]float64, NumElements)
	for i := range symbols {
		mat.Row(row, i, rec.Species)
		e, err := ElementFromOneHot(row)
		if err != nil {
			//row is reused, the error must keep its own copy.
			err.(*InvalidOneHotError).Vector = append([]float64(nil), row...)
			return err
		}
		symbols[i] = e.Symbol()
	}
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "%d\n\n", natoms)
	for i, s := range symbols {
		c := rec.Positions.VecView(i)
		fmt.Fprintf(w, "%s %8.3f %8.3f %8.3f\n", s, c.At(0, 0), c.At(0, 1), c.At(0, 2))
	}
	return w.Flush()
}
