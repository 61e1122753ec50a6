/*
 * config_test.go
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
source:
  url: "http://localhost:8000/qm9.tar.bz2"
cache:
  dir: "/tmp/qm9-cache"
  name: "small"
  workers: 2
log:
  level: "debug"
  format: "json"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qm9.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSourceURL, cfg.Source.URL)
	assert.Equal(t, DefaultCacheDir, cfg.Cache.Dir)
	assert.Equal(t, DefaultCacheName, cfg.Cache.Name)
	assert.Equal(t, "", cfg.Cache.WorkDir)
	assert.Equal(t, DefaultWorkers(), cfg.Cache.Workers)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.False(t, cfg.Store.Minio.Enabled())
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/qm9.tar.bz2", cfg.Source.URL)
	assert.Equal(t, "/tmp/qm9-cache", cfg.Cache.Dir)
	assert.Equal(t, "small", cfg.Cache.Name)
	assert.Equal(t, 2, cfg.Cache.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("QM9_CACHE_WORK_DIR", "/tmp/qm9-work")
	t.Setenv("QM9_CACHE_WORKERS", "7")
	t.Setenv("QM9_STORE_MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("QM9_STORE_MINIO_BUCKET", "datasets")
	t.Setenv("QM9_STORE_MINIO_USE_SSL", "true")
	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/qm9-work", cfg.Cache.WorkDir)
	assert.Equal(t, 7, cfg.Cache.Workers)
	assert.True(t, cfg.Store.Minio.Enabled())
	assert.Equal(t, "datasets", cfg.Store.Minio.Bucket)
	assert.True(t, cfg.Store.Minio.UseSSL)
	assert.Equal(t, "small", cfg.Cache.Name)
}

func TestLoadOverride(t *testing.T) {
	t.Setenv("QM9_LOG_LEVEL", "warn")
	cfg, err := Load("", Override{Key: "log.level", Value: "error"})
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "source: [unclosed"))
	assert.Error(t, err)

	_, err = Load("", Override{Key: "log.level", Value: "loud"})
	assert.ErrorContains(t, err, "log.level")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty url":  func(c *Config) { c.Source.URL = "" },
		"ftp url":    func(c *Config) { c.Source.URL = "ftp://example.com/qm9.tar.bz2" },
		"empty name": func(c *Config) { c.Cache.Name = "" },
		"empty dir":  func(c *Config) { c.Cache.Dir = "" },
		"no workers": func(c *Config) { c.Cache.Workers = 0 },
		"no bucket":  func(c *Config) { c.Store.Minio.Endpoint = "localhost:9000" },
		"log format": func(c *Config) { c.Log.Format = "xml" },
		"bad url":    func(c *Config) { c.Source.URL = "http://[::1" },
	}
	for name, mod := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())
			mod(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	//With an object store, the local dir is not needed.
	cfg := Default()
	cfg.Cache.Dir = ""
	cfg.Store.Minio = MinioConfig{Endpoint: "localhost:9000", Bucket: "datasets"}
	assert.NoError(t, cfg.Validate())
}
