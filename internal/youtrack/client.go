// Package youtrack is a thin adapter over the YouTrack REST API. Every
// operation returns a JSON-shaped value; failures are normalized into a
// {"error": message} mapping and never surface as Go errors.
package youtrack

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"youtrack_mcp/internal/logger"
)

// Settings configures a Client explicitly. The client reads no globals,
// so tests can point it at a fake backend.
type Settings struct {
	BaseURL    string // YouTrack instance URL without the /api suffix
	Token      string // permanent token, sent as a bearer token
	ReadOnly   bool   // rejects mutating operations before any network call
	HTTPClient *http.Client
}

// Client performs single REST calls against YouTrack. It holds no
// mutable state after construction and is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	readOnly   bool
	httpClient *http.Client
}

// New creates a YouTrack API client from the given settings.
func New(s Settings) *Client {
	httpClient := s.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(s.BaseURL, "/"),
		token:      s.Token,
		readOnly:   s.ReadOnly,
		httpClient: httpClient,
	}
}

// ReadOnly reports whether mutating operations are disabled.
func (c *Client) ReadOnly() bool {
	return c.readOnly
}

// Execute performs one REST call and returns either the decoded JSON
// body (a mapping or a sequence of mappings) or {"error": message}. It
// never panics and never returns a Go error: failure is a value.
func (c *Client) Execute(ctx context.Context, method, endpoint string, query url.Values, body any) any {
	logger.GetLogger().Debug("youtrack api request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
	)

	result, apiErr := c.do(ctx, method, endpoint, query, body)
	if apiErr != nil {
		logger.GetLogger().Warn("youtrack api request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("kind", string(apiErr.Kind)),
			zap.Int("status", apiErr.Status),
			zap.Error(apiErr.Cause),
		)
		return apiErr.Result()
	}
	return result
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body any) (any, *APIError) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, unexpectedError(err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/"+endpoint, reqBody)
	if err != nil {
		return nil, unexpectedError(err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	// 204 means the call succeeded with nothing to decode
	if resp.StatusCode == http.StatusNoContent {
		return map[string]any{}, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unexpectedError(err)
	}

	if resp.StatusCode >= 400 {
		return nil, statusError(resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var decoded any
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, unexpectedError(err)
	}
	return decoded, nil
}
