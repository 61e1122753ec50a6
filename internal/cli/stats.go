/*
 * stats.go, part of qm9.
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

package cli

import (
	"encoding/json"
	"os"

	"github.com/rmera/qm9"
	"github.com/rmera/qm9/chemplot"
	"github.com/rmera/qm9/histo"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

//datasetStats summarizes the molecules in the dataset.
type datasetStats struct {
	Molecules int
	MinAtoms  int
	MaxAtoms  int
	MeanAtoms float64
	Elements  [qm9.NumElements]int
	Sizes     []int
	Histogram *histo.Data
}

func computeStats(recs []*qm9.Record) (*datasetStats, error) {
	s := &datasetStats{Molecules: len(recs), Sizes: make([]int, len(recs))}
	sizes := make([]float64, len(recs))
	for i, r := range recs {
		n := r.Len()
		s.Sizes[i] = n
		sizes[i] = float64(n)
		if i == 0 || n < s.MinAtoms {
			s.MinAtoms = n
		}
		if n > s.MaxAtoms {
			s.MaxAtoms = n
		}
		elems, err := r.Elements()
		if err != nil {
			return nil, err
		}
		for _, e := range elems {
			s.Elements[e]++
		}
	}
	if len(recs) > 0 {
		s.MeanAtoms = stat.Mean(sizes, nil)
	}
	s.Histogram = histo.FromInts(s.Sizes)
	return s, nil
}

func newStatsCommand(a *app) *cobra.Command {
	var plotFile, jsonFile string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print a summary of the molecule sizes and elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.ensure(cmd.Context())
			if err != nil {
				return err
			}
			recs := make([]*qm9.Record, c.Len())
			for i := range recs {
				if recs[i], err = c.Get(i); err != nil {
					return err
				}
			}
			s, err := computeStats(recs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printf(out, "Molecules: %d\n", s.Molecules)
			printf(out, "Atoms: min %d, max %d, mean %.2f\n", s.MinAtoms, s.MaxAtoms, s.MeanAtoms)
			for e, n := range s.Elements {
				printf(out, "%s: %d\n", qm9.Element(e).Symbol(), n)
			}
			printf(out, "Sizes:\n%s\n", s.Histogram)
			if jsonFile != "" {
				if err := writeJSON(jsonFile, s.Histogram); err != nil {
					return err
				}
				printf(out, "Histogram: %s\n", jsonFile)
			}
			if plotFile != "" {
				if err := chemplot.SegmentHistogram(s.Sizes, "QM9 molecule sizes", plotFile); err != nil {
					return err
				}
				printf(out, "Plot: %s\n", plotFile)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&plotFile, "plot", "", "save a histogram of the molecule sizes (png, svg or pdf)")
	cmd.Flags().StringVar(&jsonFile, "json", "", "save the histogram of the molecule sizes as JSON")
	return cmd
}

func writeJSON(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(name, append(b, '\n'), 0o644)
}
