// Package seed loads companion CSV files into collections that were never saved.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Source fetches a seed file by name. ok is false when the file does not exist.
type Source interface {
	Fetch(ctx context.Context, name string) (contents []byte, ok bool, err error)
	String() string
}

// DirSource reads seed files from a local directory.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Fetch(_ context.Context, name string) ([]byte, bool, error) {
	path := filepath.Join(s.dir, name)
	contents, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	return contents, true, nil
}

func (s *DirSource) String() string { return s.dir }

// HTTPSource downloads seed files relative to a base URL.
type HTTPSource struct {
	client  *resty.Client
	baseURL string
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		client:  resty.New(),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, bool, error) {
	endpoint := s.baseURL + "/" + url.PathEscape(name)
	res, err := s.client.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		return nil, false, fmt.Errorf("client.R.Get(%s) > %w", endpoint, err)
	}
	switch res.StatusCode() {
	case http.StatusOK:
		return res.Body(), true, nil
	case http.StatusNotFound:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
}

func (s *HTTPSource) String() string { return s.baseURL }

// NewSource picks an HTTPSource for http(s) URLs and a DirSource otherwise.
func NewSource(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location)
	}
	return NewDirSource(location)
}
