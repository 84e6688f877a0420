/*
 * pae_test.go, part of alphaparser.
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

package pae

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

//3 residues, rows given out of order.
const flat = `[{"residue1":[2,2,2,1,1,1,3,3,3],
"residue2":[1,2,3,1,2,3,1,2,3],
"distance":[4,0.2,5,0.1,1.5,7,8.5,6,0.3],
"max_predicted_aligned_error":31.75}]`

func dense(Te *testing.T, M *mat.Dense) [][]float64 {
	r, _ := M.Dims()
	ret := make([][]float64, r)
	for i := range ret {
		ret[i] = mat.Row(nil, i, M)
	}
	return ret
}

func TestBuildScatter(Te *testing.T) {
	r1 := []float64{1, 1, 2, 2}
	r2 := []float64{1, 2, 1, 2}
	v := []float64{0.1, 2, 3, 0.4}
	M, err := Build(r1, r2, v)
	require.NoError(Te, err)
	n, _ := M.Dims()
	require.Equal(Te, 2, n)
	for i := range v {
		assert.Equal(Te, v[i], M.At(int(r1[i])-1, int(r2[i])-1))
	}
}

func TestBuildMismatched(Te *testing.T) {
	M, err := Build([]float64{1, 1}, []float64{1}, []float64{1, 2})
	assert.Nil(Te, M)
	assert.True(Te, errors.Is(err, ErrMismatchedArrays))
}

func TestBuildNotSquare(Te *testing.T) {
	M, err := Build([]float64{1, 1, 1}, []float64{1, 2, 3}, []float64{1, 2, 3})
	assert.Nil(Te, M)
	assert.True(Te, errors.Is(err, ErrNotSquare))
}

func TestBuildEmpty(Te *testing.T) {
	_, err := Build(nil, nil, nil)
	assert.True(Te, errors.Is(err, ErrEmpty))
}

func TestBuildBadIndex(Te *testing.T) {
	_, err := Build([]float64{1, 1, 2, 3}, []float64{1, 2, 1, 2}, []float64{0, 0, 0, 0})
	assert.True(Te, errors.Is(err, ErrBadIndex))
	_, err = Build([]float64{1, 1, 2, 1.5}, []float64{1, 2, 1, 2}, []float64{0, 0, 0, 0})
	assert.True(Te, errors.Is(err, ErrBadIndex))
}

func TestBuildDuplicateLastWins(Te *testing.T) {
	M, err := Build([]float64{1, 1, 1, 2}, []float64{1, 1, 2, 2}, []float64{5, 6, 7, 8})
	require.NoError(Te, err)
	want := [][]float64{{6, 7}, {0, 8}}
	if d := cmp.Diff(want, dense(Te, M)); d != "" {
		Te.Errorf("matrix mismatch (-want +got):\n%s", d)
	}
}

func TestIsqrt(Te *testing.T) {
	for _, n := range []int{1, 2, 3, 100, 1024, 2700} {
		r, ok := isqrt(n * n)
		assert.True(Te, ok)
		assert.Equal(Te, n, r)
		_, ok = isqrt(n*n + 1)
		assert.False(Te, ok)
	}
}

func TestReadFlat(Te *testing.T) {
	F, err := Read(strings.NewReader(flat))
	require.NoError(Te, err)
	want := [][]float64{{0.1, 1.5, 7}, {4, 0.2, 5}, {8.5, 6, 0.3}}
	if d := cmp.Diff(want, dense(Te, F.Matrix)); d != "" {
		Te.Errorf("matrix mismatch (-want +got):\n%s", d)
	}
	assert.Equal(Te, 31.75, F.MaxPAE)
}

//The arrays are picked by position, not by name.
func TestReadKeyOrder(Te *testing.T) {
	doc := `{"b":[1,2,1,2],"a":[1,1,2,2],"scalar":3,"z":[9,8,7,6],"extra":[0]}`
	F, err := Read(strings.NewReader(doc))
	require.NoError(Te, err)
	want := [][]float64{{9, 7}, {8, 6}}
	if d := cmp.Diff(want, dense(Te, F.Matrix)); d != "" {
		Te.Errorf("matrix mismatch (-want +got):\n%s", d)
	}
}

func TestReadRows(Te *testing.T) {
	doc := `[{"predicted_aligned_error":[[0.2,3],[4,0.25]],"max_predicted_aligned_error":31.75}]`
	F, err := Read(strings.NewReader(doc))
	require.NoError(Te, err)
	assert.Equal(Te, 3.0, F.Matrix.At(0, 1))
	assert.Equal(Te, 4.0, F.Matrix.At(1, 0))
	_, err = Read(strings.NewReader(`{"predicted_aligned_error":[[1,2],[3]]}`))
	assert.True(Te, errors.Is(err, ErrNotSquare))
}

func TestReadBadLayout(Te *testing.T) {
	for _, doc := range []string{``, `[]`, `"x"`, `[{"residue1":[1],"residue2":[1]}]`, `[{"a":["x"],"b":[1],"c":[1]}]`} {
		_, err := Read(strings.NewReader(doc))
		assert.True(Te, errors.Is(err, ErrFormat), doc)
	}
	_, err := Read(strings.NewReader(`[{"residue1":[1,1],"residue2":[1],"distance":[1,1]}]`))
	assert.True(Te, errors.Is(err, ErrMismatchedArrays))
}

func TestReadFileMissing(Te *testing.T) {
	_, err := ReadFile(filepath.Join(Te.TempDir(), "best_model_pae.json"))
	assert.True(Te, errors.Is(err, ErrMissingPAE))
}

func TestReadFileCompressed(Te *testing.T) {
	dir := Te.TempDir()
	gz := filepath.Join(dir, "gz", "best_model_pae.json")
	zs := filepath.Join(dir, "zst", "best_model_pae.json")
	require.NoError(Te, os.MkdirAll(filepath.Dir(gz), 0o755))
	require.NoError(Te, os.MkdirAll(filepath.Dir(zs), 0o755))

	f, err := os.Create(gz + ".gz")
	require.NoError(Te, err)
	g := gzip.NewWriter(f)
	_, err = g.Write([]byte(flat))
	require.NoError(Te, err)
	require.NoError(Te, g.Close())
	require.NoError(Te, f.Close())

	f, err = os.Create(zs + ".zst")
	require.NoError(Te, err)
	z, err := zstd.NewWriter(f)
	require.NoError(Te, err)
	_, err = z.Write([]byte(flat))
	require.NoError(Te, err)
	require.NoError(Te, z.Close())
	require.NoError(Te, f.Close())

	for _, p := range []string{gz, zs} {
		F, err := ReadFile(p)
		require.NoError(Te, err, p)
		assert.Equal(Te, 8.5, F.Matrix.At(2, 0))
	}
}

func TestSummarize(Te *testing.T) {
	M := mat.NewDense(2, 2, []float64{0, 2, 4, 10})
	S := Summarize(M)
	assert.Equal(Te, Summary{Residues: 2, Min: 0, Max: 10, Mean: 4}, S)
	assert.Equal(Te, []float64{1, 7}, ResidueMeans(M))
	assert.Contains(Te, S.String(), "2 residues")
}
