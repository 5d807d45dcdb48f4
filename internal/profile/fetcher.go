package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrNotFound is returned when the profile endpoint answers 404.
var ErrNotFound = errors.New("profile not found")

// Fetcher loads one profile by user id.
type Fetcher interface {
	FetchProfile(ctx context.Context, id int64) (Profile, error)
}

// HTTPFetcher reads profiles from the marketplace API. pathFormat holds a
// single %d verb for the user id, e.g. "/api/profiles/%d/".
type HTTPFetcher struct {
	baseURL    string
	pathFormat string
	http       *http.Client
}

// NewHTTPFetcher validates baseURL and returns a fetcher.
func NewHTTPFetcher(baseURL, pathFormat string, httpClient *http.Client) (*HTTPFetcher, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid profile base url %q: %w", baseURL, err)
	}
	if !strings.Contains(pathFormat, "%d") {
		return nil, fmt.Errorf("profile path %q must contain %%d", pathFormat)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPFetcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		pathFormat: pathFormat,
		http:       httpClient,
	}, nil
}

// FetchProfile performs GET baseURL + pathFormat(id).
func (f *HTTPFetcher) FetchProfile(ctx context.Context, id int64) (Profile, error) {
	endpoint := f.baseURL + fmt.Sprintf(f.pathFormat, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("profile request %d: %w", id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return Profile{}, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, resp.Body)
		return Profile{}, fmt.Errorf("profile request %d: HTTP %d", id, resp.StatusCode)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("decode profile %d: %w", id, err)
	}
	if p.ID == 0 {
		p.ID = id
	}
	return p, nil
}
