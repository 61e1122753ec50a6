/*
 * show.go, part of qm9.
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
	"fmt"
	"strconv"

	"github.com/rmera/qm9"
	"github.com/spf13/cobra"
)

func parseIndexes(args []string) ([]int, error) {
	ret := make([]int, len(args))
	for i, s := range args {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", s)
		}
		ret[i] = v
	}
	return ret, nil
}

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <index>",
		Short: "Print the key and the XYZ coordinates of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndexes(args)
			if err != nil {
				return err
			}
			c, err := a.ensure(cmd.Context())
			if err != nil {
				return err
			}
			key, err := c.Key(idx[0])
			if err != nil {
				return err
			}
			rec, err := c.Get(idx[0])
			if err != nil {
				return err
			}
			text, err := qm9.XYZStringWrite(rec)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printf(out, "# %s\n", key)
			printf(out, "%s", text)
			return nil
		},
	}
}

func newCollateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "collate <index>...",
		Short: "Collate records into one batch and print its layout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndexes(args)
			if err != nil {
				return err
			}
			c, err := a.ensure(cmd.Context())
			if err != nil {
				return err
			}
			recs := make([]*qm9.Record, len(idx))
			for i, v := range idx {
				if recs[i], err = c.Get(v); err != nil {
					return err
				}
			}
			batch, err := qm9.Collate(recs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printf(out, "Molecules: %d\n", batch.NumMolecules())
			printf(out, "Atoms: %d\n", batch.Len())
			printf(out, "Edges: %d\n", batch.NumEdges())
			printf(out, "Segments: %v\n", batch.Segments)
			printf(out, "Offsets: %v\n", batch.Offsets())
			return nil
		},
	}
}
