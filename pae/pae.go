/*
 * pae.go, part of alphaparser.
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

//Package pae reads the predicted aligned error (PAE) of an AlphaFold
//prediction into a dense, square matrix, where element (i,j) is the
//expected position error of residue j when the prediction is aligned on
//residue i.
package pae

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrMissingPAE       = errors.New("PAE JSON file is missing")
	ErrMismatchedArrays = errors.New("PAE JSON contains missing data: residue and error arrays differ in length")
	ErrNotSquare        = errors.New("number of PAE values is not a perfect square")
	ErrEmpty            = errors.New("PAE JSON contains no values")
	ErrBadIndex         = errors.New("residue index out of range")
	ErrFormat           = errors.New("unrecognized PAE JSON layout")
)

//Build scatters the flat arrays r1, r2 and values into a zero-filled square
//matrix, so that M[r1[i]-1][r2[i]-1] = values[i]. Residue indexes are
//1-based. The three slices must have the same length, and that length
//must be the square of the number of residues. If a pair of residues
//appears more than once, the last value is kept.
func Build(r1, r2, values []float64) (*mat.Dense, error) {
	if len(r1) != len(r2) || len(r2) != len(values) {
		return nil, errors.Wrapf(ErrMismatchedArrays, "lengths %d, %d and %d", len(r1), len(r2), len(values))
	}
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	n, ok := isqrt(len(values))
	if !ok {
		return nil, errors.Wrapf(ErrNotSquare, "%d values", len(values))
	}
	M := mat.NewDense(n, n, nil)
	for i, v := range values {
		r, err := index(r1[i], n)
		if err != nil {
			return nil, errors.Wrapf(err, "residue1[%d]", i)
		}
		c, err := index(r2[i], n)
		if err != nil {
			return nil, errors.Wrapf(err, "residue2[%d]", i)
		}
		M.Set(r, c, v)
	}
	return M, nil
}

//FromRows returns a matrix with the given rows, which must form a square.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrEmpty
	}
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, errors.Wrapf(ErrNotSquare, "row %d has %d values, %d expected", i, len(row), n)
		}
		data = append(data, row...)
	}
	return mat.NewDense(n, n, data), nil
}

//isqrt returns the integer square root of l, and whether it is exact.
func isqrt(l int) (int, bool) {
	n := int(math.Sqrt(float64(l)))
	//guard against the float rounding down or up
	for n*n > l {
		n--
	}
	for (n+1)*(n+1) <= l {
		n++
	}
	return n, n*n == l
}

//index turns a 1-based residue number, given as a JSON number, into a
//0-based matrix index.
func index(v float64, n int) (int, error) {
	i := int(v)
	if float64(i) != v || i < 1 || i > n {
		return 0, errors.Wrapf(ErrBadIndex, "%g not an integer in [1,%d]", v, n)
	}
	return i - 1, nil
}
