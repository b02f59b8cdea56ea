package ors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fuel-route-service/internal/domain"

	"go.uber.org/zap"
)

// Client talks to OpenRouteService for geocoding and directions.
//
// Transient network failures are wrapped as ProviderUnavailableError and
// never retried here; retry policy belongs to the caller.
// The client is safe for concurrent use.
type Client struct {
	session        *http.Client
	apiKey         string
	baseURL        string
	countryCode    string
	defaultProfile string
	logger         *zap.Logger
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func NewClient(apiKey, baseURL, countryCode, defaultProfile string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}
	if defaultProfile == "" {
		defaultProfile = "driving-car"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		session:        &http.Client{Timeout: 10 * time.Second},
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		countryCode:    countryCode,
		defaultProfile: defaultProfile,
		logger:         logger,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do executes a request and classifies failures: network-level errors and
// gateway-ish statuses become ProviderUnavailableError, anything else >= 400
// surfaces as an httpStatusError with the response body attached.
func (c *Client) do(op string, req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, &domain.ProviderUnavailableError{Op: op, Err: err}
	}

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		he := &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
		switch resp.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return nil, &domain.ProviderUnavailableError{Op: op, Err: he}
		}
		return nil, he
	}

	return resp, nil
}
