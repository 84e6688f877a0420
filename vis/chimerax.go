/*
 * chimerax.go, part of alphaparser.
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

package vis

import "github.com/cockroachdb/errors"

//ChimeraXHandle runs UCSF ChimeraX without graphics. ChimeraX has no
//named equivalents of PyMOL's gradients, so they are given as color lists.
type ChimeraXHandle struct {
	command string
	tmpl    string
}

//ChimeraXTemplate is the default argument template for ChimeraX.
const ChimeraXTemplate = `--nogui --exit --cmd "open {{.Structure}}; color bfactor palette {{.Spectrum}}; save {{.Session}}"`

var chimeraxSpectra = map[Spectrum]string{
	YellowGreenBlue:  "yellow:green:blue",
	RedYellowGreen:   "red:yellow:green",
	MagentaWhiteCyan: "magenta:white:cyan",
}

func NewChimeraXHandle() *ChimeraXHandle {
	run := new(ChimeraXHandle)
	run.SetDefaults()
	return run
}

func (C *ChimeraXHandle) SetDefaults() {
	C.command = "chimerax"
	C.tmpl = ChimeraXTemplate
}

func (C *ChimeraXHandle) Command() string { return C.command }

func (C *ChimeraXHandle) SetCommand(command string) { C.command = command }

func (C *ChimeraXHandle) Template() string { return C.tmpl }

func (C *ChimeraXHandle) SetTemplate(tmpl string) { C.tmpl = tmpl }

func (C *ChimeraXHandle) Ext() string { return ".cxs" }

func (C *ChimeraXHandle) Color(s Spectrum) (string, error) {
	if s == "" {
		s = DefaultSpectrum
	}
	c, ok := chimeraxSpectra[s]
	if !ok {
		return "", errors.WithHint(errors.Wrapf(ErrSpectrum, "%q", s), "use one of ygb, rg or mwc")
	}
	return c, nil
}
