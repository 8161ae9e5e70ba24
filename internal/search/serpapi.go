package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const ProviderSerpAPI = "serpapi"

// DefaultLocation is the fixed geography every query is issued from.
const DefaultLocation = "New York,New York,United States"

const maxResponseBytes = 1 << 20

// Options configures the SerpAPI provider. The API key is the only required
// field; zero values for the rest fall back to defaults.
type Options struct {
	Endpoint string
	APIKey   string
	Location string
	Timeout  time.Duration
}

type SerpAPIProvider struct {
	endpoint string
	apiKey   string
	location string
	client   *http.Client
}

func NewSerpAPIProvider(opts Options) *SerpAPIProvider {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = "https://serpapi.com/search.json"
	}
	location := strings.TrimSpace(opts.Location)
	if location == "" {
		location = DefaultLocation
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &SerpAPIProvider{
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(opts.APIKey),
		location: location,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *SerpAPIProvider) Name() string {
	return ProviderSerpAPI
}

// Search issues one google-engine request and flattens the response document
// into the ordered result list. Provider failure is not retried.
func (p *SerpAPIProvider) Search(ctx context.Context, query string) ([]Result, error) {
	if p.apiKey == "" {
		return nil, NewTypedError(ErrorTypeConfig, fmt.Errorf("serpapi api key is missing"))
	}

	q := Query{Query: query, Location: p.location}.Normalize()
	if q.Query == "" {
		return []Result{}, nil
	}

	u, err := url.Parse(p.endpoint)
	if err != nil {
		return nil, NewTypedError(ErrorTypeConfig, fmt.Errorf("invalid serpapi endpoint: %w", err))
	}

	params := u.Query()
	params.Set("engine", "google")
	params.Set("q", q.Query)
	params.Set("location", q.Location)
	params.Set("hl", "en")
	params.Set("gl", "us")
	params.Set("api_key", p.apiKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, NewTypedError(ErrorTypeUnknown, fmt.Errorf("create serpapi request failed: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "glimpse/0.1 (+search-summary)")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, NewTypedError(ErrorTypeNetwork, fmt.Errorf("serpapi request failed: %w", err))
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		detail := strings.TrimSpace(string(body))
		if detail == "" {
			detail = res.Status
		}
		errorType := ErrorTypeUnknown
		if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
			errorType = ErrorTypeConfig
		} else if res.StatusCode == http.StatusTooManyRequests {
			errorType = ErrorTypeRateLimit
		} else if res.StatusCode >= 500 {
			errorType = ErrorTypeUpstream5xx
		}
		return nil, NewTypedError(errorType, fmt.Errorf("serpapi http %d: %s", res.StatusCode, detail))
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, NewTypedError(ErrorTypeNetwork, fmt.Errorf("read serpapi response failed: %w", err))
	}

	// SerpAPI reports some request-level failures as 200 with an error field.
	if msg := gjson.GetBytes(body, "error").String(); msg != "" {
		return nil, NewTypedError(ErrorTypeUpstream5xx, fmt.Errorf("serpapi error: %s", msg))
	}

	return Normalize(body), nil
}
