/*
 * results.go, part of alphaparser.
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

//Package results finds the files of an AlphaFold prediction, given either
//the results directory or an archive of it, and decides where the files
//derived from it will be written.
package results

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/rmera/alphaparser/logger"
)

//Names of the AlphaFold files used.
const (
	StructureFile = "best_model.pdb"
	PAEFile       = "best_model_pae.json"
)

//Suffixes added to the output base name.
const (
	SessionSuffix = "_pLDDT"
	PlotSuffix    = "_pae_matrix.png"
)

var (
	ErrBadInput    = errors.New("results must be a directory or an archive (.zip, .tar.gz, .tgz, .tar.zst)")
	ErrBadOutput   = errors.New("output path exists and is not a directory")
	ErrUnsafeEntry = errors.New("archive entry points outside of the extraction directory")
)

//Run holds the paths for one prediction.
type Run struct {
	Input   string //the path given by the user
	Dir     string //the directory where the AlphaFold files are
	Base    string //output path without suffixes
	kind    Kind
	scratch string //temporary extraction directory, if any
	cleaned bool
}

//Resolve prepares a Run for input, which must be a results directory or a
//supported archive. Archives are extracted into a new temporary directory,
//which the caller must release with Cleanup.
//The output files will be named after the last element of input (without the
//archive extension) and placed in output. If output doesn't exist it is
//created. An empty output means the current directory.
func Resolve(input, output string) (*Run, error) {
	R := &Run{Input: input}
	R.kind = ArchiveKind(input)
	var name string
	if R.kind != NotArchive {
		logger.Logger.Infof("Input file is a %q file, extracting to a temporary directory...", R.kind)
		dir, err := os.MkdirTemp("", "alphaparser-")
		if err != nil {
			return nil, errors.Wrap(err, "creating temporary directory")
		}
		R.scratch = dir
		if err := extract(input, dir, R.kind); err != nil {
			os.RemoveAll(dir)
			return nil, err
		}
		R.Dir = unwrap(dir)
		base := filepath.Base(input)
		name = base[:len(base)-len(R.kind)]
	} else {
		info, err := os.Stat(input)
		if err != nil || !info.IsDir() {
			return nil, errors.WithHintf(errors.Wrapf(ErrBadInput, "%s", input),
				"give the AlphaFold results directory or a zip file of it")
		}
		R.Dir = input
		abs, err := filepath.Abs(input)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %s", input)
		}
		name = filepath.Base(abs)
	}
	outdir, err := outputDir(output)
	if err != nil {
		R.Cleanup()
		return nil, err
	}
	R.Base = filepath.Join(outdir, name)
	logger.Logger.Debugw("resolved results", "dir", R.Dir, "base", R.Base)
	return R, nil
}

//outputDir returns the directory where the output files go, creating
//it if needed.
func outputDir(output string) (string, error) {
	if output == "" {
		return ".", nil
	}
	info, err := os.Stat(output)
	switch {
	case err == nil && info.IsDir():
		return output, nil
	case err == nil:
		return "", errors.Wrapf(ErrBadOutput, "%s", output)
	case !os.IsNotExist(err):
		return "", errors.Wrapf(err, "checking output path %s", output)
	}
	if err := os.MkdirAll(output, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating output directory %s", output)
	}
	logger.Logger.Debugf("created output directory %s", output)
	return output, nil
}

//unwrap returns the extraction directory dir, unless it contains none of
//the AlphaFold files and exactly one subdirectory, in which case it returns
//that subdirectory. Zipping a folder usually yields such an archive.
func unwrap(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return dir
	}
	var sub []string
	for _, e := range entries {
		name := e.Name()
		if name == StructureFile || strings.HasPrefix(name, PAEFile) {
			return dir
		}
		if e.IsDir() && !strings.HasPrefix(name, "__MACOSX") && !strings.HasPrefix(name, ".") {
			sub = append(sub, name)
		}
	}
	if len(sub) != 1 {
		return dir
	}
	return filepath.Join(dir, sub[0])
}

//StructurePath returns the path to the predicted structure.
func (R *Run) StructurePath() string {
	return filepath.Join(R.Dir, StructureFile)
}

//PAEPath returns the path to the PAE JSON file.
func (R *Run) PAEPath() string {
	return filepath.Join(R.Dir, PAEFile)
}

//PlotPath returns the path for the heatmap image.
func (R *Run) PlotPath() string {
	return R.Base + PlotSuffix
}

//SessionPath returns the path for the visualization session file, which
//ends in ext (".pse" for PyMOL).
func (R *Run) SessionPath(ext string) string {
	return R.Base + SessionSuffix + ext
}

//Archive returns true if the input was an archive.
func (R *Run) Archive() bool {
	return R.kind != NotArchive
}

//Cleanup removes the temporary directory created for an archive input.
//It returns true if there was nothing to clean or the removal worked, false
//otherwise. It never panics and can be called more than once.
func (R *Run) Cleanup() bool {
	if R.cleaned {
		return true
	}
	if R.kind != NotArchive && R.scratch != "" {
		if err := os.RemoveAll(R.scratch); err != nil {
			logger.Logger.Debugw("removing temporary directory", "dir", R.scratch, "error", err)
			return false
		}
		R.scratch = ""
		R.cleaned = true
		logger.Logger.Info("Deleted temporary directory...")
		return true
	}
	if info, err := os.Stat(R.Input); err == nil && info.IsDir() {
		return true
	}
	return false
}
