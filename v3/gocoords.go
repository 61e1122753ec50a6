/*
 * gocoords.go, part of qm9.
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

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//METHODS

//NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Len is an alias for NVecs.
func (F *Matrix) Len() int {
	return F.NVecs()
}

//AddVec adds a vector to each vector of the matrix A, putting the result on the receiver.
//The receiver can be A itself. Panics if matrices are mismatched.
func (F *Matrix) AddVec(A, vec *Matrix) {
	F.addScaledVec(A, vec, 1)
}

//SubVec subtracts the vector to each vector of the matrix A, putting
//the result on the receiver. The receiver can be A itself, and vec is
//not modified. Panics if matrices are mismatched.
func (F *Matrix) SubVec(A, vec *Matrix) {
	F.addScaledVec(A, vec, -1)
}

//addScaledVec puts A+alpha*vec in F, element by element, so F, A and
//vec may share data.
func (F *Matrix) addScaledVec(A, vec *Matrix, alpha float64) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			F.Set(i, j, A.At(i, j)+alpha*vec.At(0, j))
		}
	}
}

//Mean returns a one-vector matrix with the arithmetic mean of each column of F.
func (F *Matrix) Mean() *Matrix {
	ret := Zeros(1)
	col := make([]float64, F.NVecs())
	for j := 0; j < 3; j++ {
		mat.Col(col, j, F.Dense)
		ret.Set(0, j, stat.Mean(col, nil))
	}
	return ret
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, F.Dense)
		if i == 0 {
			v[i+1] = fmt.Sprintf("%6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
			continue
		} else if i == r-1 {
			v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f", row[0], row[1], row[2])
			continue
		} else {
			v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
		}
	}
	v[len(v)-2] = strings.Replace(v[len(v)-2], "\n", "", 1)
	return strings.Join(v, "")
}
