package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileServer(t *testing.T) *HTTPFetcher {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/api/profiles/{id}/", func(w http.ResponseWriter, req *http.Request) {
		switch chi.URLParam(req, "id") {
		case "12":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":12,"first_name":"Zuzana","last_name":"Kováčová","slug":"zuzana-k"}`))
		case "13":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, req)
		}
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	fetcher, err := NewHTTPFetcher(srv.URL, "/api/profiles/%d/", srv.Client())
	require.NoError(t, err)
	return fetcher
}

func TestHTTPFetcherDecodesProfile(t *testing.T) {
	fetcher := newProfileServer(t)

	p, err := fetcher.FetchProfile(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), p.ID)
	assert.Equal(t, "Zuzana Kováčová", p.Name())
	assert.Equal(t, "zuzana-k", p.Slug)
}

func TestHTTPFetcherErrors(t *testing.T) {
	fetcher := newProfileServer(t)

	_, err := fetcher.FetchProfile(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fetcher.FetchProfile(context.Background(), 13)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestNewHTTPFetcherRequiresIDVerb(t *testing.T) {
	_, err := NewHTTPFetcher("http://example.test", "/api/profiles/", nil)
	assert.Error(t, err)
}
