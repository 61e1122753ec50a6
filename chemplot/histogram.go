/*
 * histogram.go, part of qm9.
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

//Package chemplot draws plots of dataset statistics with gonum/plot.
package chemplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//SegmentHistogram plots a histogram of the molecule sizes in lengths, with one
//bin per atom count, and saves it to filename. The format (png, svg, pdf...)
//is taken from the extension of filename.
func SegmentHistogram(lengths []int, title, filename string) error {
	p, err := segmentHistogram(lengths, title)
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

func segmentHistogram(lengths []int, title string) (*plot.Plot, error) {
	h, err := sizeHistogram(lengths)
	if err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Atoms"
	p.Y.Label.Text = "Molecules"
	p.Add(plotter.NewGrid())
	p.Add(h)
	return p, nil
}

func sizeHistogram(lengths []int) (*plotter.Histogram, error) {
	if len(lengths) == 0 {
		return nil, fmt.Errorf("chemplot: no molecules to plot")
	}
	vals := make(plotter.Values, len(lengths))
	min, max := lengths[0], lengths[0]
	for i, v := range lengths {
		vals[i] = float64(v)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	h, err := plotter.NewHist(vals, max-min+1)
	if err != nil {
		return nil, fmt.Errorf("chemplot: %w", err)
	}
	return h, nil
}
