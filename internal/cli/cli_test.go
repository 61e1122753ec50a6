/*
 * cli_test.go
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

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rmera/qm9/histo"
	"github.com/rmera/qm9/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//setup serves the sample archive and points the configuration to it and to
//a temporary cache directory.
func setup(t *testing.T) (cacheDir string, hits *atomic.Int64) {
	t.Helper()
	data, err := os.ReadFile("../dataset/testdata/sample.tar.bz2")
	require.NoError(t, err)
	hits = new(atomic.Int64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(data)
	}))
	t.Cleanup(srv.Close)
	cacheDir = t.TempDir()
	t.Setenv("QM9_SOURCE_URL", srv.URL+"/dsgdb9nsd.xyz.tar.bz2")
	t.Setenv("QM9_CACHE_DIR", cacheDir)
	t.Setenv("QM9_CACHE_WORKERS", "2")
	t.Setenv("QM9_LOG_LEVEL", "error")
	return cacheDir, hits
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuild(t *testing.T) {
	cacheDir, hits := setup(t)
	metrics := filepath.Join(t.TempDir(), "qm9.prom")
	out, err := run(t, "build", "--metrics-file", metrics)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "QM9 Dataset", lines[0])
	assert.Equal(t, "Length: 3", lines[1])
	assert.Equal(t, "Location: "+filepath.Join(cacheDir, "dataset-qm9.json.zst"), lines[2])
	assert.Equal(t, "Skipped: 1", lines[3])

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "qm9_records_decoded_total 3")
	assert.Contains(t, string(prom), "qm9_records_skipped_total 1")

	//Second run loads.
	out, err = run(t, "build")
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())
	assert.Contains(t, out, "Length: 3\n")
	assert.NotContains(t, out, "Skipped")
}

func TestShow(t *testing.T) {
	setup(t)
	out, err := run(t, "show", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "# dsgdb9nsd_000003", lines[0])
	assert.Equal(t, "3", lines[1])
	assert.Equal(t, "", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "O "))
	assert.True(t, strings.HasPrefix(lines[5], "H "))

	_, err = run(t, "show", "3")
	var oor *dataset.IndexOutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 3, oor.Len)

	_, err = run(t, "show", "first")
	assert.ErrorContains(t, err, "invalid index")
	_, err = run(t, "show")
	assert.Error(t, err)
}

func TestCollate(t *testing.T) {
	setup(t)
	out, err := run(t, "collate", "0", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "Molecules: 3\nAtoms: 12\nEdges: 38\nSegments: [5 4 3]\nOffsets: [0 5 9]\n", out)

	_, err = run(t, "collate", "0", "-1")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	setup(t)
	plot := filepath.Join(t.TempDir(), "sizes.png")
	js := filepath.Join(t.TempDir(), "sizes.json")
	out, err := run(t, "stats", "--plot", plot, "--json", js)
	require.NoError(t, err)
	assert.Contains(t, out, "Molecules: 3\n")
	assert.Contains(t, out, "Atoms: min 3, max 5, mean 4.00\n")
	assert.Contains(t, out, "H: 9\n")
	assert.Contains(t, out, "C: 1\n")
	assert.Contains(t, out, "N: 1\n")
	assert.Contains(t, out, "O: 1\n")
	assert.Contains(t, out, "F: 0\n")
	assert.FileExists(t, plot)
	assert.Contains(t, out, "Sizes:\n  3.00-  4.00         1\n  4.00-  5.00         1\n  5.00-  6.00         1\n")

	b, err := os.ReadFile(js)
	require.NoError(t, err)
	h := new(histo.Data)
	require.NoError(t, json.Unmarshal(b, h))
	assert.Equal(t, 3, h.Total())
	assert.Equal(t, []float64{1, 1, 1}, h.View())
}

func TestConfigErrors(t *testing.T) {
	setup(t)
	_, err := run(t, "build", "--log-level", "chatty")
	assert.ErrorContains(t, err, "log.level")

	_, err = run(t, "build", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("QM9_SOURCE_URL", "ftp://example.com/qm9.tar.bz2")
	_, err = run(t, "build")
	assert.ErrorContains(t, err, "source.url")
}

func TestFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	cacheDir := t.TempDir()
	t.Setenv("QM9_SOURCE_URL", srv.URL+"/missing.tar.bz2")
	t.Setenv("QM9_CACHE_DIR", cacheDir)
	t.Setenv("QM9_LOG_LEVEL", "error")
	_, err := run(t, "build")
	var ferr *dataset.FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, http.StatusNotFound, ferr.StatusCode)
	assert.NoFileExists(t, filepath.Join(cacheDir, "dataset-qm9.json.zst"))
}
