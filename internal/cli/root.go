/*
 * root.go, part of qm9.
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

//Package cli implements the qm9 command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rmera/qm9/internal/config"
	"github.com/rmera/qm9/internal/dataset"
	"github.com/rmera/qm9/internal/logging"
	"github.com/spf13/cobra"
)

//Version is set at build time with -ldflags.
var Version = "dev"

//app holds what the subcommands share. It is filled by the
//persistent pre-run of the root command.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log logging.Logger
	reg *prometheus.Registry
}

//NewRootCommand returns the qm9 command with all its subcommands.
func NewRootCommand() *cobra.Command {
	a := new(app)
	cmd := &cobra.Command{
		Use:   "qm9",
		Short: "Prepare the QM9 dataset of small organic molecules",
		Long: "qm9 downloads the QM9 archive, decodes every molecule into a graph record\n" +
			"(one-hot species, centered coordinates, complete edge list) and keeps the\n" +
			"result, so later runs only need to load it.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file (QM9_* variables override it)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	cmd.AddCommand(
		newBuildCommand(a),
		newShowCommand(a),
		newCollateCommand(a),
		newStatsCommand(a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	var overrides []config.Override
	if a.logLevel != "" {
		overrides = append(overrides, config.Override{Key: "log.level", Value: a.logLevel})
	}
	cfg, err := config.Load(a.configPath, overrides...)
	if err != nil {
		return err
	}
	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.reg = prometheus.NewRegistry()
	return nil
}

//ensure returns the dataset, building or loading it as needed.
func (a *app) ensure(ctx context.Context) (*dataset.Cache, error) {
	c, err := dataset.FromConfig(a.cfg, a.log, a.reg)
	if err != nil {
		return nil, err
	}
	if err := c.Ensure(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

//Execute runs the qm9 command with the arguments of the process. An interrupt
//cancels whatever is being done.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

func printf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}
