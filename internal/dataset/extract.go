/*
 * extract.go, part of qm9.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package dataset

import (
	"archive/tar"
	"compress/bzip2"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

//Extractor unpacks the archive file into the directory dest.
type Extractor interface {
	Extract(ctx context.Context, archive, dest string) error
}

//TarBz2Extractor extracts bzip2-compressed tar archives. Only regular files
//and directories are extracted. Entries with absolute paths, or paths that
//would end up outside dest, make the whole extraction fail.
//The files go first to a sibling directory of dest, which is renamed to
//dest at the end, so dest never holds a half-extracted archive.
type TarBz2Extractor struct{}

func (TarBz2Extractor) Extract(ctx context.Context, archive, dest string) error {
	f, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("dataset: opening archive: %w", err)
	}
	defer f.Close()
	dest = filepath.Clean(dest)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	partial, err := os.MkdirTemp(filepath.Dir(dest), filepath.Base(dest)+".partial-")
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	if err := untar(ctx, tar.NewReader(bzip2.NewReader(f)), partial); err != nil {
		os.RemoveAll(partial)
		return err
	}
	if err := os.Rename(partial, dest); err != nil {
		os.RemoveAll(partial)
		return fmt.Errorf("dataset: %w", err)
	}
	return nil
}

func untar(ctx context.Context, tr *tar.Reader, dest string) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("dataset: reading archive: %w", err)
		}
		target, err := entryPath(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("dataset: %w", err)
			}
		case tar.TypeReg:
			if err := writeEntry(tr, target); err != nil {
				return err
			}
		}
	}
}

//entryPath returns the path where the archive entry name goes, or an error
//if it would end up outside dest.
func entryPath(dest, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("dataset: archive entry %q has an absolute path", name)
	}
	target := filepath.Join(dest, name)
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("dataset: archive entry %q escapes the destination", name)
	}
	return target, nil
}

func writeEntry(r io.Reader, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("dataset: extracting %s: %w", target, err)
	}
	return out.Close()
}
