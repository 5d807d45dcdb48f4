package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ErrRateLimited is returned when the search endpoint answers 429.
var ErrRateLimited = errors.New("search rate limited")

// StatusError is a non-2xx answer other than rate limiting.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("search failed: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("search failed: HTTP %d: %s", e.StatusCode, e.Body)
}

// Params are the inputs of one call to the search endpoint. Page and
// PerPage are only sent when positive.
type Params struct {
	Query   string
	Filters FilterSet
	Page    int
	PerPage int
}

// Values encodes p as the endpoint's query string parameters.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set("q", p.Query)
	v.Set("location", "")
	v.Set("offer_type", string(p.Filters.OfferType))
	if p.Filters.OnlyMyLocation {
		v.Set("only_my_location", "1")
	} else {
		v.Set("only_my_location", "")
	}
	v.Set("price_min", p.Filters.PriceMin)
	v.Set("price_max", p.Filters.PriceMax)
	v.Set("country", p.Filters.Country)
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return v
}

// Searcher performs remote searches. Implementations must honour ctx
// cancellation.
type Searcher interface {
	Search(ctx context.Context, params Params) (ResultSet, error)
}

type requestIDKey struct{}

// WithRequestID attaches an id that HTTPClient forwards as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id stored by WithRequestID, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

const maxErrorBody = 512

// HTTPClient talks to the marketplace search endpoint.
type HTTPClient struct {
	endpoint string
	http     *http.Client
}

// NewHTTPClient builds a client for baseURL joined with path. A nil
// httpClient falls back to http.DefaultClient; timeouts belong to it.
func NewHTTPClient(baseURL, path string, httpClient *http.Client) (*HTTPClient, error) {
	endpoint, err := url.JoinPath(baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("invalid search endpoint %q + %q: %w", baseURL, path, err)
	}
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{endpoint: endpoint, http: httpClient}, nil
}

// Search issues a GET for params. Missing arrays in the response decode as
// empty slices.
func (c *HTTPClient) Search(ctx context.Context, params Params) (ResultSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Values().Encode(), nil)
	if err != nil {
		return ResultSet{}, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if id := RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ResultSet{}, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		_, _ = io.Copy(io.Discard, resp.Body)
		return ResultSet{}, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return ResultSet{}, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload ResultSet
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ResultSet{}, fmt.Errorf("decode search response: %w", err)
	}
	if payload.Skills == nil {
		payload.Skills = []SkillResult{}
	}
	if payload.Users == nil {
		payload.Users = []UserResult{}
	}
	return payload, nil
}
