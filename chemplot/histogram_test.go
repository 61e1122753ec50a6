/*
 * histogram_test.go
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

package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func TestSegmentHistogram(t *testing.T) {
	lengths := []int{18, 9, 9, 12, 17, 18, 18, 3}
	for _, ext := range []string{"png", "svg"} {
		name := filepath.Join(t.TempDir(), "sizes."+ext)
		require.NoError(t, SegmentHistogram(lengths, "QM9 molecule sizes", name))
		info, err := os.Stat(name)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}
}

func TestSizeHistogramBins(t *testing.T) {
	h, err := sizeHistogram([]int{3, 5, 5, 9})
	require.NoError(t, err)
	assert.Len(t, h.Bins, 7)
	total := 0.0
	for _, b := range h.Bins {
		total += b.Weight
	}
	assert.Equal(t, 4.0, total)

	p, err := segmentHistogram([]int{3, 5, 5, 9}, "sizes")
	require.NoError(t, err)
	assert.Equal(t, "sizes", p.Title.Text)
	assert.Equal(t, 3*vg.Millimeter, p.Title.Padding)
}

func TestSegmentHistogramEmpty(t *testing.T) {
	assert.Error(t, SegmentHistogram(nil, "", filepath.Join(t.TempDir(), "x.png")))
}
