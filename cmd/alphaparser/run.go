/*
 * run.go, part of alphaparser.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/alphaparser/config"
	"github.com/rmera/alphaparser/logger"
	"github.com/rmera/alphaparser/pae"
	"github.com/rmera/alphaparser/paeplot"
	"github.com/rmera/alphaparser/results"
	"github.com/rmera/alphaparser/vis"
)

//run processes one prediction: resolve the input, write the session file
//(best effort), draw the PAE plot and remove any temporary files.
func run(cfg *config.Config, input string, f *runFlags) error {
	R, err := results.Resolve(input, f.output)
	if err != nil {
		return err
	}
	defer func() {
		if !R.Cleanup() {
			logger.Logger.Warn("Excess data could not be deleted.")
		}
	}()

	if !f.noSession {
		ok, err := session(cfg, R)
		if err != nil {
			return err
		}
		if !ok {
			logger.Logger.Infof("No %q was provided; continuing PAE (Predicted Alignment Error) Plot...", results.StructureFile)
		}
	}

	F, err := pae.ReadFile(R.PAEPath())
	if err != nil {
		return err
	}
	means := pae.ResidueMeans(F.Matrix)
	worst := floats.MaxIdx(means)
	logger.Logger.Debugw("PAE matrix", "summary", pae.Summarize(F.Matrix).String(), "max_predicted", F.MaxPAE,
		"worst_residue", worst+1, "worst_mean", means[worst])
	if _, err := paeplot.Render(F.Matrix, f.title, R.PlotPath(), plotOptions(cfg)); err != nil {
		return err
	}
	logger.Logger.Info("Complete.")
	return nil
}

func session(cfg *config.Config, R *results.Run) (bool, error) {
	h, err := vis.NewHandle(cfg.Vis.Backend)
	if err != nil {
		return false, err
	}
	if cfg.Vis.Command != "" {
		h.SetCommand(cfg.Vis.Command)
	}
	if cfg.Vis.Template != "" {
		h.SetTemplate(cfg.Vis.Template)
	}
	return vis.Export(h, R.Dir, R.SessionPath(h.Ext()), vis.Spectrum(cfg.Vis.Spectrum))
}

func plotOptions(cfg *config.Config) *paeplot.Options {
	return &paeplot.Options{
		Width:   vg.Length(cfg.Plot.Width) * vg.Inch,
		Height:  vg.Length(cfg.Plot.Height) * vg.Inch,
		DPI:     cfg.Plot.DPI,
		Palette: cfg.Plot.Palette,
		Reverse: cfg.Plot.Reverse,
	}
}
