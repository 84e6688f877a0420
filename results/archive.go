/*
 * archive.go, part of alphaparser.
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

package results

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/rmera/alphaparser/logger"
)

//Kind is the archive format of an input, named by its file extension.
type Kind string

const (
	NotArchive Kind = ""
	Zip        Kind = ".zip"
	TarGz      Kind = ".tar.gz"
	Tgz        Kind = ".tgz"
	TarZst     Kind = ".tar.zst"
)

//ArchiveKind deduces the archive format from the extension of name.
//Only the extension is considered, the file is not opened.
func ArchiveKind(name string) Kind {
	lname := strings.ToLower(name)
	for _, k := range []Kind{Zip, TarGz, Tgz, TarZst} {
		if strings.HasSuffix(lname, string(k)) {
			return k
		}
	}
	return NotArchive
}

//extract unpacks the whole archive fname, of kind k, into dir.
func extract(fname, dir string, k Kind) error {
	var err error
	switch k {
	case Zip:
		err = unzip(fname, dir)
	case TarGz, Tgz, TarZst:
		err = untar(fname, dir, k)
	default:
		err = errors.Newf("unsupported archive kind %q", k)
	}
	if err != nil {
		return errors.Wrapf(err, "extracting %s", fname)
	}
	return nil
}

//target returns the path where the archive entry name goes inside dir,
//or ErrUnsafeEntry if it would end up outside of dir.
func target(dir, name string) (string, error) {
	t := filepath.Join(dir, name)
	if t != filepath.Clean(dir) && !strings.HasPrefix(t, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", errors.Wrapf(ErrUnsafeEntry, "%s", name)
	}
	return t, nil
}

func unzip(fname, dir string) error {
	r, err := zip.OpenReader(fname)
	if err != nil {
		return err
	}
	defer r.Close()
	for _, f := range r.File {
		t, err := target(dir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(t, 0o755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return errors.Wrapf(err, "opening %s", f.Name)
		}
		err = writeFile(t, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func untar(fname, dir string, k Kind) error {
	fin, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer fin.Close()
	var stream io.Reader
	switch k {
	case TarZst:
		d, err := zstd.NewReader(fin)
		if err != nil {
			return err
		}
		defer d.Close()
		stream = d
	default:
		g, err := gzip.NewReader(fin)
		if err != nil {
			return err
		}
		defer g.Close()
		stream = g
	}
	tr := tar.NewReader(stream)
	for {
		h, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		t, err := target(dir, h.Name)
		if err != nil {
			return err
		}
		switch h.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(t, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(t, tr, h.FileInfo().Mode()); err != nil {
				return err
			}
		default:
			//links and devices have no place in an AlphaFold result.
			logger.Logger.Debugf("skipping archive entry %s (type %c)", h.Name, h.Typeflag)
		}
	}
}

func writeFile(t string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(t), 0o755); err != nil {
		return err
	}
	if mode.Perm() == 0 {
		mode = 0o644
	}
	fout, err := os.OpenFile(t, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm()|0o200)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fout, r); err != nil {
		fout.Close()
		return errors.Wrapf(err, "writing %s", t)
	}
	return fout.Close()
}
