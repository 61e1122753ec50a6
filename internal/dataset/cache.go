/*
 * cache.go, part of qm9.
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

//Package dataset builds the processed QM9 dataset from the raw archive and
//keeps it, so later runs only need to load it.
package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rmera/qm9"
	"github.com/rmera/qm9/internal/config"
	"github.com/rmera/qm9/internal/logging"
	"golang.org/x/sync/errgroup"
)

const (
	archiveName = "data.tar.bz2"
	rawDir      = "raw"
	blobExt     = ".json.zst"
)

//Options configures a Cache. URL, Name and Store are required.
type Options struct {
	URL  string
	Name string
	//Where the archive is downloaded and extracted. If empty, a temporary
	//directory is used, and removed once the dataset is persisted.
	WorkDir string
	//Number of files decoded at the same time. Defaults to the number of CPUs.
	Workers   int
	Store     Store
	Fetcher   Fetcher
	Extractor Extractor
	Logger    logging.Logger
	Metrics   *Metrics
}

//Cache is the processed dataset: an ordered collection of centered records,
//each with the stem of its XYZ file as key. A Cache is safe for concurrent
//use. The records it returns are shared and must not be modified.
type Cache struct {
	opts  Options
	log   logging.Logger
	mu    sync.RWMutex
	state State

	entries []Entry
	index   map[string]int
	skipped int
}

//New returns an empty Cache. Nothing is read or downloaded until Ensure
//is called.
func New(opts Options) (*Cache, error) {
	if opts.URL == "" || opts.Name == "" || opts.Store == nil {
		return nil, fmt.Errorf("dataset: URL, Name and Store are required")
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Fetcher == nil {
		opts.Fetcher = &HTTPFetcher{}
	}
	if opts.Extractor == nil {
		opts.Extractor = TarBz2Extractor{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(nil)
	}
	return &Cache{opts: opts, log: opts.Logger.Named("dataset").With(logging.String("name", opts.Name))}, nil
}

//FromConfig builds a Cache from cfg. The blob goes to the MinIO store if
//one is configured, and to cfg.Cache.Dir otherwise. Metrics are registered
//with reg, if not nil.
func FromConfig(cfg *config.Config, log logging.Logger, reg prometheus.Registerer) (*Cache, error) {
	var store Store = NewLocalStore(cfg.Cache.Dir)
	if cfg.Store.Minio.Enabled() {
		m, err := DialMinio(cfg.Store.Minio)
		if err != nil {
			return nil, err
		}
		store = m
	}
	return New(Options{
		URL:     cfg.Source.URL,
		Name:    cfg.Cache.Name,
		WorkDir: cfg.Cache.WorkDir,
		Workers: cfg.Cache.Workers,
		Store:   store,
		Logger:  log,
		Metrics: NewMetrics(reg),
	})
}

func (c *Cache) blobName() string { return c.opts.Name + blobExt }

//setState must be called with the lock held.
func (c *Cache) setState(s State) {
	c.log.Debug("state change", logging.String("from", c.state.String()), logging.String("to", s.String()))
	c.state = s
}

//State returns the current stage of the cache.
func (c *Cache) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

//Ensure makes the dataset available. If the store already has it, it is
//loaded. Otherwise the raw archive is downloaded (unless the work directory
//already has it), extracted (unless the work directory already has the
//extracted files), every XYZ file is decoded and centered, and the result
//is written to the store. Files that can't be decoded are skipped and logged.
//Once it succeeds, further calls do nothing. After a failure, the store
//does not have the dataset, and Ensure can be called again.
func (c *Cache) Ensure(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Ready() {
		return nil
	}
	c.state = StateEmpty
	blob := c.blobName()
	ok, err := c.opts.Store.Exists(ctx, blob)
	if err != nil {
		c.setState(StateFailed)
		return fmt.Errorf("dataset: checking %s: %w", c.opts.Store.Location(blob), err)
	}
	if ok {
		if err := c.load(ctx, blob); err != nil {
			c.setState(StateFailed)
			return err
		}
		c.opts.Metrics.Loads.Inc()
		c.setState(StateLoaded)
		c.log.Info("dataset loaded", logging.Int("records", len(c.entries)), logging.String("location", c.opts.Store.Location(blob)))
		return nil
	}
	start := time.Now()
	if err := c.build(ctx, blob); err != nil {
		c.entries, c.index, c.skipped = nil, nil, 0
		c.setState(StateFailed)
		return err
	}
	took := time.Since(start)
	c.opts.Metrics.BuildDuration.Observe(took.Seconds())
	c.setState(StatePersisted)
	c.log.Info("dataset persisted",
		logging.Int("records", len(c.entries)),
		logging.Int("skipped", c.skipped),
		logging.Duration("took", took),
		logging.String("location", c.opts.Store.Location(blob)))
	return nil
}

func (c *Cache) load(ctx context.Context, blob string) error {
	rc, err := c.opts.Store.Open(ctx, blob)
	if err != nil {
		return fmt.Errorf("dataset: opening %s: %w", c.opts.Store.Location(blob), err)
	}
	defer rc.Close()
	entries, err := Decode(rc)
	if err != nil {
		return fmt.Errorf("dataset: loading %s: %w", c.opts.Store.Location(blob), err)
	}
	c.setEntries(entries, 0)
	return nil
}

func (c *Cache) setEntries(entries []Entry, skipped int) {
	c.entries = entries
	c.skipped = skipped
	c.index = make(map[string]int, len(entries))
	for i, e := range entries {
		if _, dup := c.index[e.Key]; !dup {
			c.index[e.Key] = i
		}
	}
}

func (c *Cache) build(ctx context.Context, blob string) error {
	work := c.opts.WorkDir
	if work == "" {
		tmp, err := os.MkdirTemp("", "qm9-")
		if err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
		defer os.RemoveAll(tmp)
		work = tmp
	} else if err := os.MkdirAll(work, 0o755); err != nil {
		return fmt.Errorf("dataset: creating work directory: %w", err)
	}

	c.setState(StateFetching)
	archive := filepath.Join(work, archiveName)
	if exists(archive) {
		c.log.Info("archive already downloaded", logging.String("path", archive))
	} else if err := c.fetch(ctx, archive); err != nil {
		return err
	}

	c.setState(StateExtracting)
	raw := filepath.Join(work, rawDir)
	if exists(raw) {
		c.log.Info("archive already extracted", logging.String("path", raw))
	} else {
		c.log.Info("extracting archive", logging.String("path", archive))
		if err := c.opts.Extractor.Extract(ctx, archive, raw); err != nil {
			return err
		}
	}

	c.setState(StateParsing)
	files, err := findXYZ(raw)
	if err != nil {
		return err
	}
	c.log.Info("decoding files", logging.Int("files", len(files)), logging.Int("workers", c.opts.Workers))
	entries, skipped, err := c.decodeAll(ctx, files)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, entries); err != nil {
		return err
	}
	if err := c.opts.Store.Put(ctx, blob, buf.Bytes()); err != nil {
		return err
	}
	c.setEntries(entries, skipped)
	return nil
}

//fetch downloads the archive to a temporary file next to path, which is
//renamed to path only once complete.
func (c *Cache) fetch(ctx context.Context, path string) error {
	c.log.Info("downloading archive", logging.String("url", c.opts.URL))
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".part-")
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	n, err := c.opts.Fetcher.Fetch(ctx, c.opts.URL, tmp)
	c.opts.Metrics.FetchBytes.Add(float64(n))
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("dataset: %w", cerr)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	c.log.Info("archive downloaded", logging.Int64("bytes", n))
	return nil
}

//decodeAll decodes and centers the files, in parallel, and returns the
//records in the order of files. Files that fail to decode are logged and
//left out.
func (c *Cache) decodeAll(ctx context.Context, files []string) ([]Entry, int, error) {
	recs := make([]*qm9.Record, len(files))
	errs := make([]error, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := qm9.XYZFileRead(f)
			if err != nil {
				errs[i] = err
				return nil
			}
			recs[i] = qm9.CenterRecord(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	entries := make([]Entry, 0, len(files))
	skipped := 0
	for i, f := range files {
		if errs[i] != nil {
			skipped++
			c.opts.Metrics.Skipped.Inc()
			c.log.Warn("skipping file", logging.String("path", f), logging.Err(errs[i]))
			continue
		}
		c.opts.Metrics.Decoded.Inc()
		entries = append(entries, Entry{Key: stem(f), Record: recs[i]})
	}
	return entries, skipped, nil
}

//findXYZ returns the paths of all the .xyz files under root, sorted.
func findXYZ(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && filepath.Ext(path) == ".xyz" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dataset: listing %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

//readyLocked returns an error if the records can't be read yet.
func (c *Cache) readyLocked() error {
	if !c.state.Ready() {
		return &NotReadyError{State: c.state}
	}
	return nil
}

//Len returns the number of records, 0 before Ensure succeeds.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

//Get returns the record i. Indexes outside [0, Len) give an
//*IndexOutOfRangeError.
func (c *Cache) Get(i int) (*qm9.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if err := c.readyLocked(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(c.entries) {
		return nil, &IndexOutOfRangeError{Index: i, Len: len(c.entries)}
	}
	return c.entries[i].Record, nil
}

//Key returns the key (XYZ file stem) of the record i.
func (c *Cache) Key(i int) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if err := c.readyLocked(); err != nil {
		return "", err
	}
	if i < 0 || i >= len(c.entries) {
		return "", &IndexOutOfRangeError{Index: i, Len: len(c.entries)}
	}
	return c.entries[i].Key, nil
}

//Lookup returns the record with the given key. If several files had the
//same stem, the first one, in path order, is returned.
func (c *Cache) Lookup(key string) (*qm9.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return c.entries[i].Record, true
}

//Location returns where the processed dataset is, or would be, stored.
func (c *Cache) Location() string {
	return c.opts.Store.Location(c.blobName())
}

//Skipped returns the number of files left out of the last build. It is 0 if
//the dataset was loaded.
func (c *Cache) Skipped() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.skipped
}
