/*
 * root.go, part of alphaparser.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rmera/alphaparser/config"
	"github.com/rmera/alphaparser/logger"
)

//runFlags are the flags that only make sense for one run, and so are not
//part of the configuration.
type runFlags struct {
	output    string
	title     string
	config    string
	noSession bool
}

//configFlags maps configuration keys to the flags that override them.
var configFlags = map[string]string{
	"vis.backend":  "backend",
	"vis.spectrum": "spectrum",
	"vis.command":  "vis-command",
	"plot.dpi":     "dpi",
	"log.json":     "json-log",
	"log.verbose":  "verbose",
}

func newRootCmd() *cobra.Command {
	f := new(runFlags)
	cmd := &cobra.Command{
		Use:   "alphaparser <results>",
		Short: "Parse AlphaFold results into a pLDDT-colored session file and a PAE plot",
		Long: `alphaparser takes the results directory, or a zip file of it, produced by an
AlphaFold prediction, and writes <name>_pLDDT.pse, a PyMOL session with the
best model colored by pLDDT, and <name>_pae_matrix.png, a heatmap of the
predicted aligned error. <name> is the name of the directory or zip file.`,
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.New(f.config)
			if err != nil {
				return err
			}
			if err := bindFlags(v, cmd); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger.Initialize(cfg.Log.JSON, cfg.Log.Verbose, cmd.ErrOrStderr())
			defer logger.Sync()
			return run(cfg, args[0], f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "directory for the .pse and .png files, created if needed (default: current directory)")
	fl.StringVarP(&f.title, "title", "t", "", `title for the PAE plot, "PAE Plot" is appended to it`)
	fl.StringVar(&f.config, "config", "", "configuration file (default: alphaparser.toml in . or ~/.config/alphaparser)")
	fl.BoolVar(&f.noSession, "no-session", false, "skip the session file, only draw the PAE plot")
	fl.String("spectrum", "ygb", "pLDDT color gradient: ygb (yellow-green-blue), rg (red-yellow-green) or mwc (magenta-white-cyan)")
	fl.String("backend", "pymol", "visualization program: pymol or chimerax")
	fl.String("vis-command", "", "path to the visualization program")
	fl.Int("dpi", 600, "resolution of the PAE plot")
	fl.Bool("json-log", false, "log in JSON")
	fl.BoolP("verbose", "v", false, "log debugging information")
	return cmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, name := range configFlags {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}
