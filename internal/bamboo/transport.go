package bamboo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

// basicAuthPassword is the fixed password BambooHR expects alongside an API key.
const basicAuthPassword = "x"

// Response is a raw API reply. Non-2xx replies are still returned as a
// Response; only transport failures are errors.
type Response struct {
	StatusCode int
	Body       []byte
}

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s failed with status code %d: %s", e.Method, e.Path, e.StatusCode, strings.TrimSpace(e.Body))
}

// Transport handles low-level HTTP, authentication and pacing
type Transport struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

// NewTransport creates a transport with base URL and API key
func NewTransport(baseURL, apiKey string, httpClient *http.Client, limiter *rate.Limiter) *Transport {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Transport{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: httpClient,
		limiter:    limiter,
	}
}

// helper: build full URL with query params
func (t *Transport) buildURL(path string, query url.Values) (string, error) {
	u, err := url.Parse(t.BaseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid API URL %q: %w", t.BaseURL+path, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// Get sends a GET request
func (t *Transport) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return t.do(ctx, http.MethodGet, path, query, nil)
}

// Post sends a POST request with a JSON body
func (t *Transport) Post(ctx context.Context, path string, data any) (*Response, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", path, err)
	}
	return t.do(ctx, http.MethodPost, path, nil, body)
}

func (t *Transport) do(ctx context.Context, method, path string, query url.Values, body []byte) (*Response, error) {
	fullURL, err := t.buildURL(path, query)
	if err != nil {
		return nil, err
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(t.APIKey, basicAuthPassword)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// getJSON performs a GET and decodes a 200 reply into out.
func (t *Transport) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := t.Get(ctx, path, query)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Method: http.MethodGet, Path: path, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
