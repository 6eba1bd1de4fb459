// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves notebook documents by identifier and decodes them.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/lesson-scraper/internal/httputil"
	"github.com/pdiddy/lesson-scraper/pkg/types"
)

const (
	// DefaultBaseURL is the raw GitHub directory holding the tutorial notebooks.
	DefaultBaseURL = "https://raw.githubusercontent.com/anthropics/prompt-eng-interactive-tutorial/master/Anthropic%201P"

	// DefaultUserAgent is a browser-like User-Agent; raw.githubusercontent.com
	// throttles unfamiliar clients more aggressively.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Fetcher returns the parsed notebook for an identifier. Errors are
// *FetchError when the document could not be retrieved and *ParseError
// when it was retrieved but is not a notebook.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*types.Notebook, error)
}

// FetchError reports a transport-level failure retrieving a notebook.
type FetchError struct {
	ID  string
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.ID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a retrieved document that is not a well-formed notebook.
type ParseError struct {
	ID  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.ID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Decode parses notebook JSON. Only the top-level object and the cell list
// are checked; unknown fields are ignored.
func Decode(data []byte) (*types.Notebook, error) {
	var nb types.Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, err
	}
	return &nb, nil
}

// HTTPFetcher fetches notebooks from BaseURL/<id> with one GET per call.
type HTTPFetcher struct {
	client  *http.Client
	baseURL string
	cfg     types.HTTPConfig
}

// NewHTTPFetcher returns a fetcher using client and the base URL and
// headers from cfg. An empty base URL means DefaultBaseURL.
func NewHTTPFetcher(client *http.Client, cfg types.ScrapeConfig) *HTTPFetcher {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	httpCfg := cfg.HTTPConfig
	if httpCfg.UserAgent == "" {
		httpCfg.UserAgent = DefaultUserAgent
	}
	return &HTTPFetcher{
		client:  client,
		baseURL: strings.TrimRight(base, "/"),
		cfg:     httpCfg,
	}
}

// URL returns the URL a notebook identifier is fetched from.
func (f *HTTPFetcher) URL(id string) string {
	return f.baseURL + "/" + url.PathEscape(id)
}

// Fetch retrieves and decodes the notebook named id.
func (f *HTTPFetcher) Fetch(ctx context.Context, id string) (*types.Notebook, error) {
	u := f.URL(id)
	data, err := httputil.Get(ctx, f.client, u, f.cfg, "application/json")
	if err != nil {
		return nil, &FetchError{ID: id, URL: u, Err: err}
	}
	nb, err := Decode(data)
	if err != nil {
		return nil, &ParseError{ID: id, Err: err}
	}
	return nb, nil
}

// DirFetcher reads notebooks from a local directory, for working offline
// against a checkout of the tutorial repository.
type DirFetcher struct {
	Dir string
}

// URL returns the local path of a notebook identifier.
func (f DirFetcher) URL(id string) string {
	return filepath.Join(f.Dir, filepath.Base(id))
}

// Fetch reads and decodes Dir/<id>.
func (f DirFetcher) Fetch(ctx context.Context, id string) (*types.Notebook, error) {
	path := f.URL(id)
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{ID: id, URL: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FetchError{ID: id, URL: path, Err: err}
	}
	nb, err := Decode(data)
	if err != nil {
		return nil, &ParseError{ID: id, Err: err}
	}
	return nb, nil
}
