/*
 * fetch_test.go
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
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("archive bytes"))
		case "/teapot":
			w.WriteHeader(http.StatusTeapot)
			w.Write([]byte("short and stout"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	f := &HTTPFetcher{Client: srv.Client()}
	ctx := context.Background()

	var buf bytes.Buffer
	n, err := f.Fetch(ctx, srv.URL+"/ok", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(13), n)
	assert.Equal(t, "archive bytes", buf.String())

	for path, code := range map[string]int{"/teapot": http.StatusTeapot, "/nope": http.StatusNotFound} {
		buf.Reset()
		_, err := f.Fetch(ctx, srv.URL+path, &buf)
		var ferr *FetchError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, code, ferr.StatusCode)
		assert.Equal(t, srv.URL+path, ferr.URL)
		assert.Contains(t, err.Error(), "status")
		assert.Zero(t, buf.Len(), "the body of a failed request must not be written")
	}

	_, err = (&HTTPFetcher{}).Fetch(ctx, "http://127.0.0.1:1/qm9.tar.bz2", &buf)
	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Zero(t, ferr.StatusCode)
	assert.NotNil(t, ferr.Unwrap())

	_, err = f.Fetch(ctx, "::not a url", &buf)
	require.ErrorAs(t, err, &ferr)
}
