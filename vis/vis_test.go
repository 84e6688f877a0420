/*
 * vis_test.go, part of alphaparser.
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

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//fakeProgram is a stand-in for a visualization program. It takes the last
//argument, writes the file named after its "save " command, and exits with
//$FAKE_EXIT. The arguments are stored next to the output.
const fakeProgram = `#!/bin/sh
for a in "$@"; do last="$a"; done
out="${last##*save }"
if [ -z "$FAKE_NOWRITE" ]; then
	printf '%s\n' "$@" > "$out.args"
	touch "$out"
fi
exit ${FAKE_EXIT:-0}
`

//installFake puts a fake program called name first in PATH.
func installFake(Te *testing.T, name string) {
	if runtime.GOOS == "windows" {
		Te.Skip("the fake visualization program is a shell script")
	}
	bin := Te.TempDir()
	require.NoError(Te, os.WriteFile(filepath.Join(bin, name), []byte(fakeProgram), 0o755))
	Te.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

//structureDir returns a directory with a (fake) best_model.pdb in it.
func structureDir(Te *testing.T) string {
	dir := Te.TempDir()
	require.NoError(Te, os.WriteFile(filepath.Join(dir, StructureFile), []byte("END\n"), 0o644))
	return dir
}

func TestPyMOLArgs(Te *testing.T) {
	h := NewPyMOLHandle()
	args, err := Args(h, Job{Structure: "/data/my run/best_model.pdb", Session: "out/x_pLDDT.pse", Spectrum: "yellow_green_blue"})
	require.NoError(Te, err)
	want := []string{"-cq", "/data/my run/best_model.pdb", "-d", "spectrum b, yellow_green_blue; save out/x_pLDDT.pse"}
	if d := cmp.Diff(want, args); d != "" {
		Te.Errorf("args mismatch (-want +got):\n%s", d)
	}
}

func TestCustomTemplate(Te *testing.T) {
	h := NewPyMOLHandle()
	h.SetTemplate(`-c {{.Structure}} -d 'spectrum b, {{.Spectrum}}, minimum=50; save {{.Session}}'`)
	args, err := Args(h, Job{Structure: "s.pdb", Session: "s.pse", Spectrum: "red_yellow_green"})
	require.NoError(Te, err)
	assert.Equal(Te, "spectrum b, red_yellow_green, minimum=50; save s.pse", args[3])

	h.SetTemplate(`-c {{.Nope}}`)
	_, err = Args(h, Job{})
	assert.Error(Te, err)
	h.SetTemplate(`-c "unterminated`)
	_, err = Args(h, Job{})
	assert.Error(Te, err)
}

func TestSpectra(Te *testing.T) {
	p := NewPyMOLHandle()
	c := NewChimeraXHandle()
	for s, want := range map[Spectrum]string{"": "yellow_green_blue", "ygb": "yellow_green_blue", "rg": "red_yellow_green", "mwc": "magenta_white_cyan"} {
		got, err := p.Color(s)
		require.NoError(Te, err)
		assert.Equal(Te, want, got)
		got, err = c.Color(s)
		require.NoError(Te, err)
		assert.Equal(Te, strings.ReplaceAll(want, "_", ":"), got)
	}
	_, err := p.Color("rainbow")
	assert.True(Te, errors.Is(err, ErrSpectrum))
}

func TestNewHandle(Te *testing.T) {
	h, err := NewHandle("PyMOL")
	require.NoError(Te, err)
	assert.Equal(Te, ".pse", h.Ext())
	h, err = NewHandle("chimerax")
	require.NoError(Te, err)
	assert.Equal(Te, ".cxs", h.Ext())
	_, err = NewHandle("vmd")
	assert.True(Te, errors.Is(err, ErrBackend))
}

func TestProgramNotFound(Te *testing.T) {
	h := NewPyMOLHandle()
	h.SetCommand("surely-not-a-pymol-binary")
	ok, err := Export(h, structureDir(Te), filepath.Join(Te.TempDir(), "x.pse"), DefaultSpectrum)
	assert.False(Te, ok)
	assert.True(Te, errors.Is(err, ErrProgramNotFound))
}

func TestMissingStructure(Te *testing.T) {
	installFake(Te, "pymol")
	session := filepath.Join(Te.TempDir(), "x_pLDDT.pse")
	ok, err := Export(NewPyMOLHandle(), Te.TempDir(), session, DefaultSpectrum)
	require.NoError(Te, err)
	assert.False(Te, ok)
	assert.NoFileExists(Te, session)
}

func TestExport(Te *testing.T) {
	installFake(Te, "pymol")
	dir := structureDir(Te)
	session := filepath.Join(Te.TempDir(), "x_pLDDT.pse")
	ok, err := Export(NewPyMOLHandle(), dir, session, MagentaWhiteCyan)
	require.NoError(Te, err)
	assert.True(Te, ok)
	assert.FileExists(Te, session)
	b, err := os.ReadFile(session + ".args")
	require.NoError(Te, err)
	want := "-cq\n" + filepath.Join(dir, StructureFile) + "\n-d\nspectrum b, magenta_white_cyan; save " + session + "\n"
	assert.Equal(Te, want, string(b))
}

func TestExportChimeraX(Te *testing.T) {
	installFake(Te, "chimerax")
	session := filepath.Join(Te.TempDir(), "x_pLDDT.cxs")
	ok, err := Export(NewChimeraXHandle(), structureDir(Te), session, "")
	require.NoError(Te, err)
	assert.True(Te, ok)
	b, err := os.ReadFile(session + ".args")
	require.NoError(Te, err)
	assert.Contains(Te, string(b), "color bfactor palette yellow:green:blue")
}

func TestExportFailedRun(Te *testing.T) {
	installFake(Te, "pymol")
	Te.Setenv("FAKE_EXIT", "3")
	session := filepath.Join(Te.TempDir(), "x_pLDDT.pse")
	ok, err := Export(NewPyMOLHandle(), structureDir(Te), session, DefaultSpectrum)
	require.NoError(Te, err)
	assert.False(Te, ok, "a non-zero exit is a failure even if the file was written")
}

func TestExportNoFile(Te *testing.T) {
	installFake(Te, "pymol")
	Te.Setenv("FAKE_NOWRITE", "1")
	session := filepath.Join(Te.TempDir(), "x_pLDDT.pse")
	ok, err := Export(NewPyMOLHandle(), structureDir(Te), session, DefaultSpectrum)
	require.NoError(Te, err)
	assert.False(Te, ok)
}

func TestExportUnsafePath(Te *testing.T) {
	installFake(Te, "pymol")
	dir := structureDir(Te)
	session := filepath.Join(Te.TempDir(), "x;quit;_pLDDT.pse")
	ok, err := Export(NewPyMOLHandle(), dir, session, DefaultSpectrum)
	assert.False(Te, ok)
	assert.True(Te, errors.Is(err, ErrUnsafePath))
	assert.NoFileExists(Te, session)
}
