/*
 * config.go, part of qm9.
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

//Package config loads the settings of the qm9 command from an optional YAML
//file and QM9_* environment variables.
package config

import (
	"fmt"
	"net/url"

	"github.com/rmera/qm9/internal/logging"
)

//Config is the whole configuration of the qm9 command.
type Config struct {
	Source SourceConfig   `mapstructure:"source"`
	Cache  CacheConfig    `mapstructure:"cache"`
	Store  StoreConfig    `mapstructure:"store"`
	Log    logging.Config `mapstructure:"log"`
}

//SourceConfig tells where the raw archive comes from.
type SourceConfig struct {
	URL string `mapstructure:"url"`
}

//CacheConfig tells where and how the processed dataset is built.
type CacheConfig struct {
	//Directory for the processed blob, when it is kept on local disk.
	Dir string `mapstructure:"dir"`
	//Blob name, without extension.
	Name string `mapstructure:"name"`
	//Directory for the downloaded archive and the extracted files. If empty,
	//a temporary directory is used and removed after the build.
	WorkDir string `mapstructure:"work_dir"`
	//Number of files decoded at the same time.
	Workers int `mapstructure:"workers"`
}

//StoreConfig selects an object store for the blob instead of the local disk.
type StoreConfig struct {
	Minio MinioConfig `mapstructure:"minio"`
}

//MinioConfig is the S3-compatible bucket used when Endpoint is not empty.
type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

//Enabled returns true if the blob should go to the object store.
func (m MinioConfig) Enabled() bool { return m.Endpoint != "" }

//Validate checks that c can be used to build the dataset.
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return fmt.Errorf("config: source.url is required")
	}
	u, err := url.Parse(c.Source.URL)
	if err != nil {
		return fmt.Errorf("config: source.url %q: %w", c.Source.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: source.url %q must be http or https", c.Source.URL)
	}
	if c.Cache.Name == "" {
		return fmt.Errorf("config: cache.name is required")
	}
	if c.Cache.Dir == "" && !c.Store.Minio.Enabled() {
		return fmt.Errorf("config: cache.dir is required")
	}
	if c.Cache.Workers < 1 {
		return fmt.Errorf("config: cache.workers must be >= 1, got %d", c.Cache.Workers)
	}
	if c.Store.Minio.Enabled() && c.Store.Minio.Bucket == "" {
		return fmt.Errorf("config: store.minio.bucket is required when store.minio.endpoint is set")
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected console|json", c.Log.Format)
	}
	return nil
}
