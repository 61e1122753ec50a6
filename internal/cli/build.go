/*
 * build.go, part of qm9.
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newBuildCommand(a *app) *cobra.Command {
	var metricsFile string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the processed dataset, or load it if it is already there",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.ensure(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printf(out, "QM9 Dataset\n")
			printf(out, "Length: %d\n", c.Len())
			printf(out, "Location: %s\n", c.Location())
			if c.Skipped() > 0 {
				printf(out, "Skipped: %d\n", c.Skipped())
			}
			if metricsFile != "" {
				return prometheus.WriteToTextfile(metricsFile, a.reg)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write the build metrics to this file, in Prometheus text format")
	return cmd
}
