// Package source fetches the two archive payloads the collection is built from.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/unsent/pkg/archive"
)

// maxPayload bounds how much of a payload is read.
const maxPayload = 32 << 20

// Fetcher returns the raw bytes of a named payload.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Open returns an HTTP fetcher for http(s) locations and a Dir otherwise.
func Open(location string, client *http.Client) Fetcher {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTP(location, client)
	}
	return Dir(location)
}

// Dir reads payloads from files in a directory.
type Dir string

func (d Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(string(d), name))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// HTTP fetches payloads with GET requests relative to a base URL.
type HTTP struct {
	baseURL string
	http    *http.Client
}

func NewHTTP(baseURL string, httpClient *http.Client) *HTTP {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (h *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	fullURL := h.baseURL + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s request failed: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch %s failed with status %d: %s", name, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", name, err)
	}
	return data, nil
}

// Load fetches both payloads concurrently and builds the collection. Any
// failure is reported as an *archive.LoadError.
func Load(ctx context.Context, f Fetcher, proseName, poemName string) (*archive.Collection, error) {
	var prose, poems []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := f.Fetch(gctx, proseName)
		if err != nil {
			return &archive.LoadError{Source: archive.SourceProse, Err: err}
		}
		prose = data
		return nil
	})
	g.Go(func() error {
		data, err := f.Fetch(gctx, poemName)
		if err != nil {
			return &archive.LoadError{Source: archive.SourcePoems, Err: err}
		}
		poems = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return archive.Decode(prose, poems)
}

// Loader binds a fetcher to the payload names.
type Loader struct {
	Fetcher Fetcher
	Prose   string
	Poems   string
}

func (l Loader) Load(ctx context.Context) (*archive.Collection, error) {
	return Load(ctx, l.Fetcher, l.Prose, l.Poems)
}
