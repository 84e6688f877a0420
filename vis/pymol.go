/*
 * pymol.go, part of alphaparser.
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

//PyMOLHandle runs PyMOL in command line mode (-c, quiet). The session is
//colored with PyMOL's "spectrum b" command, since AlphaFold stores the pLDDT
//in the B-factor column.
type PyMOLHandle struct {
	command string
	tmpl    string
}

//PyMOLTemplate is the default argument template for PyMOL. Paths go into
//the -d command unquoted, so Export refuses paths with a semicolon.
const PyMOLTemplate = `-cq {{.Structure}} -d "spectrum b, {{.Spectrum}}; save {{.Session}}"`

var pymolSpectra = map[Spectrum]string{
	YellowGreenBlue:  "yellow_green_blue",
	RedYellowGreen:   "red_yellow_green",
	MagentaWhiteCyan: "magenta_white_cyan",
}

func NewPyMOLHandle() *PyMOLHandle {
	run := new(PyMOLHandle)
	run.SetDefaults()
	return run
}

func (P *PyMOLHandle) SetDefaults() {
	P.command = "pymol"
	P.tmpl = PyMOLTemplate
}

func (P *PyMOLHandle) Command() string { return P.command }

func (P *PyMOLHandle) SetCommand(command string) { P.command = command }

func (P *PyMOLHandle) Template() string { return P.tmpl }

func (P *PyMOLHandle) SetTemplate(tmpl string) { P.tmpl = tmpl }

func (P *PyMOLHandle) Ext() string { return ".pse" }

//Color returns the PyMOL palette name for s. An empty s means the default.
func (P *PyMOLHandle) Color(s Spectrum) (string, error) {
	if s == "" {
		s = DefaultSpectrum
	}
	c, ok := pymolSpectra[s]
	if !ok {
		return "", errors.WithHint(errors.Wrapf(ErrSpectrum, "%q", s), "use one of ygb, rg or mwc")
	}
	return c, nil
}
