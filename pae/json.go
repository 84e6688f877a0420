/*
 * json.go, part of alphaparser.
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
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"

	"github.com/rmera/alphaparser/logger"
)

//Keys of the newer AlphaFold PAE layout, where the matrix is given as
//an array of rows.
const (
	matrixKey = "predicted_aligned_error"
	maxKey    = "max_predicted_aligned_error"
)

//File is the content of a PAE JSON file.
type File struct {
	Matrix *mat.Dense
	MaxPAE float64 //the largest error the model can predict, 0 if not given
}

//field is a JSON object member. Objects are kept as slices of fields since
//the meaning of the flat arrays depends on the order of their keys.
type field struct {
	key string
	raw json.RawMessage
}

//ReadFile reads the PAE JSON file fname. If fname doesn't exist, but a gzip
//(fname.gz) or zstd (fname.zst) compressed version does, that one is read.
func ReadFile(fname string) (*File, error) {
	path, err := locate(fname)
	if err != nil {
		return nil, err
	}
	fin, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer fin.Close()
	var r io.Reader = fin
	switch {
	case strings.HasSuffix(path, ".gz"):
		g, err := gzip.NewReader(fin)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		defer g.Close()
		r = g
	case strings.HasSuffix(path, ".zst"):
		d, err := zstd.NewReader(fin)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		defer d.Close()
		r = d
	}
	F, err := Read(r)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	logger.Logger.Debugw("read PAE matrix", "file", path, "residues", F.Matrix.RawMatrix().Rows)
	return F, nil
}

func locate(fname string) (string, error) {
	for _, p := range []string{fname, fname + ".gz", fname + ".zst"} {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", errors.WithHint(errors.Wrapf(ErrMissingPAE, "%s", fname),
		"make sure best_model_pae.json was not renamed")
}

//Read decodes a PAE JSON document. Two layouts are understood:
//a (possibly array-wrapped) object whose first three array members are the
//1-based indexes of the first residue, those of the second residue and the
//error values; and an object with a predicted_aligned_error member holding
//the matrix rows. When the document is an array, only its first element
//is used.
func Read(r io.Reader) (*File, error) {
	dec := json.NewDecoder(r)
	fields, err := firstObject(dec)
	if err != nil {
		return nil, err
	}
	F := new(File)
	var arrays [][]float64
	var rows [][]float64
	for _, f := range fields {
		switch {
		case f.key == maxKey:
			if err := json.Unmarshal(f.raw, &F.MaxPAE); err != nil {
				return nil, errors.Wrapf(ErrFormat, "%s: %v", maxKey, err)
			}
		case f.key == matrixKey:
			if err := json.Unmarshal(f.raw, &rows); err != nil {
				return nil, errors.Wrapf(ErrFormat, "%s: %v", matrixKey, err)
			}
		case len(arrays) < 3 && isArray(f.raw):
			var a []float64
			if err := json.Unmarshal(f.raw, &a); err != nil {
				return nil, errors.Wrapf(ErrFormat, "member %q: %v", f.key, err)
			}
			arrays = append(arrays, a)
		}
	}
	if rows != nil {
		if F.Matrix, err = FromRows(rows); err != nil {
			return nil, err
		}
		return F, nil
	}
	if len(arrays) < 3 {
		return nil, errors.Wrapf(ErrFormat, "expected 3 arrays, found %d", len(arrays))
	}
	F.Matrix, err = Build(arrays[0], arrays[1], arrays[2])
	if err != nil {
		return nil, err
	}
	return F, nil
}

//firstObject returns the members, in order, of the top level object in dec,
//or of the first element of the top level array.
func firstObject(dec *json.Decoder) ([]field, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrapf(ErrFormat, "%v", err)
	}
	if tok == json.Delim('[') {
		if tok, err = dec.Token(); err != nil {
			return nil, errors.Wrapf(ErrFormat, "%v", err)
		}
	}
	if tok != json.Delim('{') {
		return nil, errors.Wrapf(ErrFormat, "expected an object, found %v", tok)
	}
	var fields []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "%v", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Wrapf(ErrFormat, "unexpected %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrapf(ErrFormat, "member %q: %v", key, err)
		}
		fields = append(fields, field{key, raw})
	}
	return fields, nil
}

func isArray(raw json.RawMessage) bool {
	t := bytes.TrimLeft(raw, " \t\r\n")
	return len(t) > 0 && t[0] == '['
}
