// Package httpclient provides an HTTP client with exponential backoff,
// used for target availability checks before dynamic probing.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config contains the retry options for the client.
type Config struct {
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Timeout      time.Duration
}

// Client retries failed requests and 5xx responses with exponential backoff.
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a client; zero config fields get defaults.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryMax == 0 {
		cfg.RetryMax = 3
	}
	if cfg.RetryWaitMin == 0 {
		cfg.RetryWaitMin = 1 * time.Second
	}
	if cfg.RetryWaitMax == 0 {
		cfg.RetryWaitMax = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
	}
}

// Do executes the request, retrying transport errors and server errors.
// 4xx responses return as-is; probes treat them as data.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	operation := func() error {
		// The body is consumed on every attempt; rebuild it when possible.
		if req.GetBody != nil {
			newBody, bodyErr := req.GetBody()
			if bodyErr != nil {
				return backoff.Permanent(fmt.Errorf("regenerating request body: %w", bodyErr))
			}
			req.Body = newBody
		}

		resp, err = c.httpClient.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode >= 500 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("server error: %d - %s", resp.StatusCode, string(body))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.config.RetryWaitMin
	b.MaxInterval = c.config.RetryWaitMax
	b.MaxElapsedTime = c.config.RetryWaitMax * time.Duration(c.config.RetryMax)

	ctx := req.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if retryErr := backoff.Retry(operation, backoff.WithContext(b, ctx)); retryErr != nil {
		return nil, retryErr
	}
	return resp, nil
}
