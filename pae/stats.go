/*
 * stats.go, part of alphaparser.
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
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//Summary contains a few numbers describing a PAE matrix.
type Summary struct {
	Residues int
	Min      float64
	Max      float64
	Mean     float64
}

func (S Summary) String() string {
	return fmt.Sprintf("%d residues, PAE min %.2f max %.2f mean %.2f", S.Residues, S.Min, S.Max, S.Mean)
}

//Summarize returns the Summary of the square matrix M.
func Summarize(M mat.Matrix) Summary {
	r, c := M.Dims()
	data := make([]float64, 0, r*c)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, M)
		data = append(data, row...)
	}
	return Summary{
		Residues: r,
		Min:      floats.Min(data),
		Max:      floats.Max(data),
		Mean:     stat.Mean(data, nil),
	}
}

//ResidueMeans returns, for each residue used for the alignment (each row),
//the mean error of all residues.
func ResidueMeans(M mat.Matrix) []float64 {
	r, c := M.Dims()
	ret := make([]float64, r)
	row := make([]float64, c)
	for i := range ret {
		mat.Row(row, i, M)
		ret[i] = stat.Mean(row, nil)
	}
	return ret
}
