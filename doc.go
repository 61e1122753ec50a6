/*
 * doc.go, part of qm9.
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

/*
Package qm9 turns the molecules of the QM9 dataset into graph records that
can be fed to a model.

	**Capabilities**

    Reads/writes XYZ files (including the "*^" exponent notation used in QM9)
	into Records: one-hot species (H, C, N, O, F), Nx3 coordinates and the
	edges of the complete graph over the atoms.

    Centers the coordinates of a record at the origin.

    Collates several records into a single batch sharing one atom index
	space. The number of atoms of each molecule is kept in the Segments of
	the batch, so each molecule can be recovered.

    Offers a Gonum graph view of a record.

The coordinates are kept in a v3.Matrix, where each row is one point in space.
The dataset building and caching lives in internal/dataset, and the qm9
command in cmd/qm9 drives it.
*/
package qm9
