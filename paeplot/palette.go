/*
 * palette.go, part of alphaparser.
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

package paeplot

import (
	"image/color"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
)

//steps is the number of colors in the heatmap palette.
const steps = 256

//colorMap returns a map over [min,max] that interpolates, in CIE L*a*b*,
//the 9-color ColorBrewer sequential palette name. ColorBrewer sequential
//palettes go from light to dark. With reverse, low values get the dark end,
//so the seaborn YlGnBu_r is colorMap("YlGnBu", true, ...).
func colorMap(name string, reverse bool, min, max float64) (palette.ColorMap, error) {
	p, err := brewer.GetPalette(brewer.TypeSequential, name, 9)
	if err != nil {
		return nil, errors.Wrapf(err, "palette %q", name)
	}
	c := p.Colors()
	//moreland wants the control colors in order of increasing luminance
	dark := make([]color.Color, len(c))
	for i := range c {
		dark[i] = c[len(c)-1-i]
	}
	cm, err := moreland.NewLuminance(dark)
	if err != nil {
		return nil, errors.Wrapf(err, "palette %q", name)
	}
	cm.SetMax(max)
	cm.SetMin(min)
	if !reverse {
		cm = palette.Reverse(cm)
	}
	return cm, nil
}
