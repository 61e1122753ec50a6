/*
 * store.go, part of qm9.
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
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

//Store keeps the processed dataset blob.
type Store interface {
	//Exists returns true if the blob name is in the store.
	Exists(ctx context.Context, name string) (bool, error)
	//Open opens the blob name for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	//Put writes the blob name. Either the whole of data is stored,
	//or nothing is.
	Put(ctx context.Context, name string, data []byte) error
	//Location returns a human-readable location for the blob name.
	Location(name string) string
}

//LocalStore is a Store in a directory of the local file system.
type LocalStore struct {
	root string
}

//NewLocalStore returns a store in the directory root, which is created, if
//needed, on the first Put.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, name)
}

func (s *LocalStore) Exists(_ context.Context, name string) (bool, error) {
	info, err := os.Stat(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(s.path(name))
}

//Put writes data to a temporary file in the store directory, and then
//renames it to name.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("dataset: creating store directory: %w", err)
	}
	tmp, err := os.CreateTemp(s.root, "."+name+".tmp-")
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	tmpname := tmp.Name()
	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpname, s.path(name))
	}
	if err != nil {
		os.Remove(tmpname)
		return fmt.Errorf("dataset: writing %s: %w", s.path(name), err)
	}
	return nil
}

func (s *LocalStore) Location(name string) string {
	p := s.path(name)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
