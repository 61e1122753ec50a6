/*
 * extract_test.go
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarBz2Extract(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "raw")
	require.NoError(t, TarBz2Extractor{}.Extract(context.Background(), sampleArchive, dest))
	files, err := findXYZ(dest)
	require.NoError(t, err)
	require.Len(t, files, 4)
	for i, f := range files {
		assert.Equal(t, filepath.Join(dest, "dsgdb9nsd", "dsgdb9nsd_00000"+string(rune('1'+i))+".xyz"), f)
	}
	//Nothing left behind next to dest.
	siblings, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	assert.Len(t, siblings, 1)
}

func TestTarBz2ExtractEscape(t *testing.T) {
	parent := t.TempDir()
	dest := filepath.Join(parent, "raw")
	err := TarBz2Extractor{}.Extract(context.Background(), "testdata/escape.tar.bz2", dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes")
	assert.NoDirExists(t, dest)
	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTarBz2ExtractBadArchive(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "data.tar.bz2")
	require.NoError(t, os.WriteFile(bad, []byte("this is not bzip2"), 0o644))
	assert.Error(t, TarBz2Extractor{}.Extract(context.Background(), bad, filepath.Join(dir, "raw")))
	assert.NoDirExists(t, filepath.Join(dir, "raw"))
	assert.Error(t, TarBz2Extractor{}.Extract(context.Background(), filepath.Join(dir, "missing"), filepath.Join(dir, "raw")))
}

func TestEntryPath(t *testing.T) {
	dest := filepath.FromSlash("/data/raw")
	good := map[string]string{
		"a.xyz":        "a.xyz",
		"dir/b.xyz":    "dir/b.xyz",
		"./c.xyz":      "c.xyz",
		"dir/../d.xyz": "d.xyz",
	}
	for name, want := range good {
		got, err := entryPath(dest, name)
		require.NoError(t, err, name)
		assert.Equal(t, filepath.Join(dest, filepath.FromSlash(want)), got)
	}
	for _, name := range []string{"../x.xyz", "dir/../../x.xyz", "/etc/passwd", ".."} {
		_, err := entryPath(dest, name)
		assert.Error(t, err, name)
	}
}

func TestFindXYZ(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{"b/2.xyz", "a.xyz", "b/1.xyz", "c.txt", "b/d.xyz.bak"} {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
	files, err := findXYZ(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.xyz"),
		filepath.Join(root, "b", "1.xyz"),
		filepath.Join(root, "b", "2.xyz"),
	}, files)
	assert.Equal(t, "1", stem(files[1]))

	_, err = findXYZ(filepath.Join(root, "missing"))
	assert.Error(t, err)
}
