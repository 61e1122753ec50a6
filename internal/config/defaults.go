/*
 * defaults.go, part of qm9.
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
	"runtime"

	"github.com/spf13/viper"
)

const (
	DefaultSourceURL = "https://github.com/bondrewd/dataset-qm9-raw/raw/refs/heads/main/dsgdb9nsd.xyz.tar.bz2"
	DefaultCacheDir  = "dataset"
	DefaultCacheName = "dataset-qm9"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

//DefaultWorkers is the number of decoding goroutines when none is configured.
func DefaultWorkers() int { return runtime.NumCPU() }

//setDefaults registers the defaults in v. Viper only looks at the
//environment for keys it already knows about, so every key goes here,
//even the ones whose default is the zero value.
func setDefaults(v *viper.Viper) {
	v.SetDefault("source.url", DefaultSourceURL)
	v.SetDefault("cache.dir", DefaultCacheDir)
	v.SetDefault("cache.name", DefaultCacheName)
	v.SetDefault("cache.work_dir", "")
	v.SetDefault("cache.workers", DefaultWorkers())
	v.SetDefault("store.minio.endpoint", "")
	v.SetDefault("store.minio.access_key", "")
	v.SetDefault("store.minio.secret_key", "")
	v.SetDefault("store.minio.bucket", "")
	v.SetDefault("store.minio.prefix", "")
	v.SetDefault("store.minio.use_ssl", false)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}

//ApplyDefaults fills the zero-valued fields of cfg that have a default.
//Fields already set are left alone.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Source.URL == "" {
		cfg.Source.URL = DefaultSourceURL
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = DefaultCacheDir
	}
	if cfg.Cache.Name == "" {
		cfg.Cache.Name = DefaultCacheName
	}
	if cfg.Cache.Workers == 0 {
		cfg.Cache.Workers = DefaultWorkers()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

//Default returns a Config with every default applied.
func Default() *Config {
	cfg := new(Config)
	ApplyDefaults(cfg)
	return cfg
}
