package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerpAPIMissingKey(t *testing.T) {
	p := NewSerpAPIProvider(Options{})
	_, err := p.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Equal(t, ErrorTypeConfig, ClassifyError(err))
}

func TestSerpAPIRequestParameters(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = map[string]string{
			"engine":   r.URL.Query().Get("engine"),
			"q":        r.URL.Query().Get("q"),
			"location": r.URL.Query().Get("location"),
			"api_key":  r.URL.Query().Get("api_key"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"organic_results":[{"title":"hit"}]}`))
	}))
	defer srv.Close()

	p := NewSerpAPIProvider(Options{Endpoint: srv.URL, APIKey: "test-key"})
	results, err := p.Search(context.Background(), "bob's your uncle")
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "google", got["engine"])
	assert.Equal(t, "bob's your uncle", got["q"])
	assert.Equal(t, DefaultLocation, got["location"])
	assert.Equal(t, "test-key", got["api_key"])
}

func TestSerpAPICustomLocation(t *testing.T) {
	var gotLocation string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocation = r.URL.Query().Get("location")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := NewSerpAPIProvider(Options{Endpoint: srv.URL, APIKey: "k", Location: "Austin,Texas,United States"})
	_, err := p.Search(context.Background(), "tacos")
	require.NoError(t, err)
	assert.Equal(t, "Austin,Texas,United States", gotLocation)
}

func TestSerpAPIStatusClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType string
	}{
		{"unauthorized", http.StatusUnauthorized, ErrorTypeConfig},
		{"rate limited", http.StatusTooManyRequests, ErrorTypeRateLimit},
		{"upstream down", http.StatusBadGateway, ErrorTypeUpstream5xx},
		{"bad request", http.StatusBadRequest, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			p := NewSerpAPIProvider(Options{Endpoint: srv.URL, APIKey: "k"})
			_, err := p.Search(context.Background(), "q")
			require.Error(t, err)
			assert.Equal(t, tt.wantType, ClassifyError(err))
		})
	}
}

func TestSerpAPIInBodyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Google hasn't returned any results for this query."}`))
	}))
	defer srv.Close()

	p := NewSerpAPIProvider(Options{Endpoint: srv.URL, APIKey: "k"})
	_, err := p.Search(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, ErrorTypeUpstream5xx, ClassifyError(err))
}

func TestSerpAPINetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	p := NewSerpAPIProvider(Options{Endpoint: srv.URL, APIKey: "k"})
	_, err := p.Search(context.Background(), "q")
	require.Error(t, err)

	var typed *TypedError
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, ErrorTypeNetwork, typed.Type)
}

func TestSerpAPIBlankQueryShortCircuits(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	p := NewSerpAPIProvider(Options{Endpoint: srv.URL, APIKey: "k"})
	results, err := p.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, called)
}
