/*
 * vis.go, part of alphaparser.
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

//Package vis produces visualization session files for an AlphaFold
//structure, with residues colored by their pLDDT, using an external
//molecular visualization program.
//
//Each program is driven through a Handle, so the export logic (checking
//for the program and the structure, running it and checking its output)
//is the same for all of them.
package vis

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"

	"github.com/rmera/alphaparser/logger"
)

var (
	ErrProgramNotFound = errors.New("visualization program not installed or not in PATH")
	ErrSpectrum        = errors.New("unknown color spectrum")
	ErrBackend         = errors.New("unknown visualization backend")
	ErrUnsafePath      = errors.New("path contains ';', which splits the visualization program's command")
)

//Spectrum is a choice of color gradient, from the least to the most
//confident residues.
type Spectrum string

const (
	YellowGreenBlue  Spectrum = "ygb"
	RedYellowGreen   Spectrum = "rg"
	MagentaWhiteCyan Spectrum = "mwc"
	DefaultSpectrum           = YellowGreenBlue
)

//Job contains the values available to a command template.
type Job struct {
	Structure string //the structure file to load
	Session   string //the session file to write
	Spectrum  string //the program-specific name of the color gradient
}

//Handle is the interface to a visualization program.
type Handle interface {
	//Command returns the program to run.
	Command() string
	SetCommand(command string)

	//Template returns the argument template. It is split into arguments
	//following shell quoting rules, and each argument is then executed as
	//a text/template with a Job.
	Template() string
	SetTemplate(tmpl string)

	//Color returns the program's name for the gradient s.
	Color(s Spectrum) (string, error)

	//Ext returns the extension of the session files, with the dot.
	Ext() string
}

//NewHandle returns a handle for the named backend ("pymol" or "chimerax").
func NewHandle(backend string) (Handle, error) {
	switch strings.ToLower(backend) {
	case "", "pymol":
		return NewPyMOLHandle(), nil
	case "chimerax":
		return NewChimeraXHandle(), nil
	}
	return nil, errors.Wrapf(ErrBackend, "%q", backend)
}

//Args returns the arguments for running the program of h with job.
func Args(h Handle, job Job) ([]string, error) {
	words, err := shellquote.Split(h.Template())
	if err != nil {
		return nil, errors.Wrapf(err, "splitting template %q", h.Template())
	}
	args := make([]string, 0, len(words))
	for _, w := range words {
		t, err := template.New("arg").Option("missingkey=error").Parse(w)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing template argument %q", w)
		}
		var b bytes.Buffer
		if err := t.Execute(&b, job); err != nil {
			return nil, errors.Wrapf(err, "executing template argument %q", w)
		}
		args = append(args, b.String())
	}
	return args, nil
}

//Export writes a session file, session, for the structure in dir, with
//residues colored with gradient by the pLDDT stored in the
//B-factor column. It returns an error if the spectrum is unknown, if the
//program is not available, or if a path contains ';' (both PyMOL and
//ChimeraX read it as a command separator). A missing structure file, a failure of the
//program, or a session file that is not there after the run are reported
//by returning false and a nil error.
func Export(h Handle, dir, session string, gradient Spectrum) (bool, error) {
	color, err := h.Color(gradient)
	if err != nil {
		return false, err
	}
	structure := filepath.Join(dir, StructureFile)
	for _, p := range []string{structure, session} {
		if strings.Contains(p, ";") {
			return false, errors.WithHint(errors.Wrapf(ErrUnsafePath, "%s", p),
				"rename the results or choose another output directory")
		}
	}
	prog, err := exec.LookPath(h.Command())
	if err != nil {
		return false, errors.WithHintf(errors.Wrapf(ErrProgramNotFound, "%s", h.Command()),
			"install %s or set vis.command to its full path", h.Command())
	}
	if _, err := os.Stat(structure); err != nil {
		logger.Logger.Warnf("No session file was written. Please make sure the pdb file %q was not renamed.", StructureFile)
		return false, nil
	}
	args, err := Args(h, Job{Structure: structure, Session: session, Spectrum: color})
	if err != nil {
		return false, err
	}
	logger.Logger.Debugf("running %s", shellquote.Join(append([]string{prog}, args...)...))
	out, err := exec.Command(prog, args...).CombinedOutput()
	if len(out) > 0 {
		logger.Logger.Debugf("%s output:\n%s", h.Command(), out)
	}
	if err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			logger.Logger.Warnf("%s exited with status %d", h.Command(), exit.ExitCode())
		} else {
			logger.Logger.Warnf("running %s: %v", h.Command(), err)
		}
		return false, nil
	}
	if _, err := os.Stat(session); err != nil {
		logger.Logger.Warnf("No session file was written. %s ran, but %s is not there.", h.Command(), session)
		return false, nil
	}
	logger.Logger.Infof("Wrote %q in %s", filepath.Base(session), where(session))
	return true, nil
}

//StructureFile is the name of the structure loaded by Export.
const StructureFile = "best_model.pdb"

func where(fname string) string {
	d := filepath.Dir(fname)
	if d == "." {
		return "the current directory"
	}
	return d
}
