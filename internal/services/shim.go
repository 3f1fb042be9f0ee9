package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Shim endpoint paths, relative to the configured base address.
const (
	PathChat            = "/chat"
	PathFsList          = "/fs/list"
	PathFsRead          = "/fs/read"
	PathFsWrite         = "/fs/write"
	PathWeatherAlerts   = "/weather/alerts"
	PathWeatherForecast = "/weather/forecast"
)

// ShimClient issues single POST calls to the tool-execution shim. It never
// retries and sends no auth headers.
type ShimClient struct {
	baseURL    string
	httpClient *http.Client
}

// ShimResult is a 2xx response from the shim. Body is left undecoded.
type ShimResult struct {
	Status int
	Body   []byte
}

func NewShimClient(baseURL string, httpClient *http.Client) *ShimClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ShimClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the address the client was built with.
func (c *ShimClient) BaseURL() string {
	return c.baseURL
}

// Post sends body as JSON to path. A non-2xx answer yields *HTTPError; a
// call that never produced a response yields *TransportError.
func (c *ShimClient) Post(ctx context.Context, path string, body interface{}) (*ShimResult, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shim request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Path: path, Err: fmt.Errorf("failed to read shim response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Path: path, Status: resp.StatusCode, Body: string(data)}
	}

	return &ShimResult{Status: resp.StatusCode, Body: data}, nil
}
