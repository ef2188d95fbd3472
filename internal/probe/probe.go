// Package probe issues live HTTP requests against a target application to
// replicate reported vulnerabilities.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/b45t3rr/genai-triage/internal/httpclient"
)

// maxBodyCapture bounds how much of a response body is kept as evidence.
const maxBodyCapture = 4096

// Result captures one probe round trip.
type Result struct {
	URL        string        `json:"url"`
	Method     string        `json:"metodo"`
	Payload    string        `json:"payload,omitempty"`
	StatusCode int           `json:"codigo_estado"`
	Body       string        `json:"respuesta"`
	Duration   time.Duration `json:"duracion"`
	Err        string        `json:"error,omitempty"`
}

// Prober runs HTTP probes against a single base URL.
type Prober struct {
	baseURL string
	client  *retryablehttp.Client
	checker *httpclient.Client
}

// New builds a prober for the target base URL.
func New(baseURL string) (*Prober, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid target URL %q", baseURL)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = 15 * time.Second
	// Exploit probes assert on the raw status code, so 4xx/5xx are data,
	// not transport failures.
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return err != nil, nil
	}

	return &Prober{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  retryClient,
		// The availability check should answer fast: one retry, short waits.
		checker: httpclient.NewClient(httpclient.Config{
			Timeout:      10 * time.Second,
			RetryMax:     1,
			RetryWaitMin: 200 * time.Millisecond,
			RetryWaitMax: 2 * time.Second,
		}),
	}, nil
}

// BaseURL returns the normalized target.
func (p *Prober) BaseURL() string { return p.baseURL }

// CheckAvailability verifies the target answers at all before any probing
// starts. Any HTTP status counts as available.
func (p *Prober) CheckAvailability(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := p.checker.Do(req)
	if err != nil {
		return fmt.Errorf("target %s is not reachable: %w", p.baseURL, err)
	}
	resp.Body.Close()
	return nil
}

// Get probes a path relative to the base URL.
func (p *Prober) Get(ctx context.Context, path string) Result {
	return p.do(ctx, http.MethodGet, path, "")
}

// Post probes a path with a form or JSON payload.
func (p *Prober) Post(ctx context.Context, path, payload string) Result {
	return p.do(ctx, http.MethodPost, path, payload)
}

func (p *Prober) do(ctx context.Context, method, path, payload string) Result {
	target := p.resolve(path)
	result := Result{URL: target, Method: method, Payload: payload}

	var body io.Reader
	if payload != "" {
		body = strings.NewReader(payload)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	if payload != "" {
		contentType := "application/x-www-form-urlencoded"
		if strings.HasPrefix(strings.TrimSpace(payload), "{") {
			contentType = "application/json"
		}
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyCapture))
	result.Body = string(data)
	return result
}

// resolve joins a probe path onto the base URL. Absolute URLs on the same
// host pass through untouched.
func (p *Prober) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if path == "" {
		return p.baseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return p.baseURL + path
}

// Describe renders a result for prompt embedding.
func (r Result) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", r.Method, r.URL)
	if r.Payload != "" {
		fmt.Fprintf(&b, "\nPayload: %s", r.Payload)
	}
	if r.Err != "" {
		fmt.Fprintf(&b, "\nError de conexión: %s", r.Err)
		return b.String()
	}
	fmt.Fprintf(&b, "\nStatus: %d", r.StatusCode)
	if r.Body != "" {
		fmt.Fprintf(&b, "\nRespuesta:\n%s", r.Body)
	}
	return b.String()
}
