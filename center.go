/*
 * center.go, part of qm9.
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

import v3 "github.com/rmera/qm9/v3"

//Center returns a copy of coords translated so its geometric center
//(not the center of mass) is at the origin. coords is not modified.
func Center(coords *v3.Matrix) *v3.Matrix {
	ret := v3.Zeros(coords.NVecs())
	centroid := coords.Mean()
	ret.SubVec(coords, centroid)
	return ret
}

//CenterRecord returns a shallow copy of rec with its positions, and the
//positions of its context, if any, centered. The two point clouds are
//centered independently. rec is not modified.
func CenterRecord(rec *Record) *Record {
	ret := *rec
	ret.Positions = Center(rec.Positions)
	if rec.Context != nil && rec.Context.Positions != nil {
		ctx := *rec.Context
		ctx.Positions = Center(rec.Context.Positions)
		ret.Context = &ctx
	}
	return &ret
}
