/*
 * plot.go, part of alphaparser.
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

//Package paeplot draws PAE matrices as heatmaps.
package paeplot

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/rmera/alphaparser/logger"
)

//DefaultTitle is the plot title, preceded by the user's title if one is given.
const DefaultTitle = "PAE Plot"

//barFraction is the fraction of the figure width used for the color bar.
const barFraction = 0.16

//Options sets the look of the figure.
type Options struct {
	Width   vg.Length
	Height  vg.Length
	DPI     int
	Palette string //name of a ColorBrewer sequential palette
	Reverse bool   //reverse the palette, so low errors get the dark colors
}

//DefaultOptions returns a 5x3.75 in, 600 dpi figure with the reversed
//YlGnBu palette.
func DefaultOptions() *Options {
	return &Options{
		Width:   5 * vg.Inch,
		Height:  3.75 * vg.Inch,
		DPI:     600,
		Palette: "YlGnBu",
		Reverse: true,
	}
}

//Title returns the full plot title for the user-given title, which can be empty.
func Title(title string) string {
	if title == "" {
		return DefaultTitle
	}
	return title + " " + DefaultTitle
}

//grid adapts a matrix to the plotter.GridXYZ interface. Columns go along
//the X axis, labeled with 1-based residue numbers. Rows are stacked from
//the top: grid row r, at height r+1, holds matrix row n-1-r, and the axis
//is labeled by flippedTicks.
type grid struct {
	m mat.Matrix
}

func (g grid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g grid) Z(c, r int) float64 {
	n, _ := g.m.Dims()
	return g.m.At(n-1-r, c)
}

func (g grid) X(c int) float64 { return float64(c + 1) }
func (g grid) Y(r int) float64 { return float64(r + 1) }

//flippedTicks places residue-number ticks on an axis where residue i
//is drawn at n+1-i.
type flippedTicks struct {
	n int
}

func (t flippedTicks) Ticks(min, max float64) []plot.Tick {
	flip := func(v float64) float64 { return float64(t.n+1) - v }
	ticks := plot.DefaultTicks{}.Ticks(flip(max), flip(min))
	for i := range ticks {
		ticks[i].Value = flip(ticks[i].Value)
	}
	return ticks
}

//NewPlots returns the heatmap plot for M and the plot of its color bar.
func NewPlots(M mat.Matrix, title string, o *Options) (*plot.Plot, *plot.Plot, error) {
	if o == nil {
		o = DefaultOptions()
	}
	cm, err := colorMap(o.Palette, o.Reverse, 0, 1)
	if err != nil {
		return nil, nil, err
	}
	h := plotter.NewHeatMap(grid{M}, cm.Palette(steps))
	h.Rasterized = true
	if h.Max <= h.Min {
		//a flat matrix still needs a non-empty color range
		h.Max = h.Min + 1
	}
	p := plot.New()
	p.Title.Text = Title(title)
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Residue 1"
	p.Y.Label.Text = "Residue 2"
	n, _ := M.Dims()
	p.Y.Tick.Marker = flippedTicks{n}
	p.Add(h)

	bar := plot.New()
	bar.HideX()
	bar.Title.Padding = p.Title.Padding
	cm.SetMax(h.Max)
	cm.SetMin(h.Min)
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	return p, bar, nil
}

//Render draws M as a heatmap in the PNG file fname. It returns true
//if the file exists after being written. Errors in building or encoding
//the figure are returned, a missing file after a successful write is only
//reported with a false.
func Render(M mat.Matrix, title, fname string, o *Options) (bool, error) {
	if o == nil {
		o = DefaultOptions()
	}
	p, bar, err := NewPlots(M, title, o)
	if err != nil {
		return false, err
	}
	c := vgimg.NewWith(vgimg.UseWH(o.Width, o.Height), vgimg.UseDPI(o.DPI))
	dc := draw.New(c)
	w := dc.Max.X - dc.Min.X
	p.Draw(draw.Crop(dc, 0, -barFraction*w, 0, 0))
	bar.Draw(draw.Crop(dc, (1-barFraction)*w, 0, 0, 0))

	fout, err := os.Create(fname)
	if err != nil {
		return false, errors.Wrapf(err, "creating %s", fname)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(fout); err != nil {
		fout.Close()
		return false, errors.Wrapf(err, "writing %s", fname)
	}
	if err := fout.Close(); err != nil {
		return false, errors.Wrapf(err, "closing %s", fname)
	}
	if _, err := os.Stat(fname); err != nil {
		logger.Logger.Warn(`No PAE plot was drawn. Please make sure the json file "best_model_pae.json" was not renamed.`)
		return false, nil
	}
	logger.Logger.Infof("Wrote %q in %s", filepath.Base(fname), where(fname))
	return true, nil
}

//where describes the directory of fname for the user.
func where(fname string) string {
	d := filepath.Dir(fname)
	if d == "." {
		return "the current directory"
	}
	return d
}
