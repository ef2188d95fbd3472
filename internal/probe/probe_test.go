package probe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewRejectsInvalidURL(t *testing.T) {
	for _, target := range []string{"", "not-a-url", "://missing-scheme"} {
		if _, err := New(target); err == nil {
			t.Errorf("New(%q) should error", target)
		}
	}
}

func TestNewNormalizesBaseURL(t *testing.T) {
	p, err := New("https://app.example.com/")
	if err != nil {
		t.Fatal(err)
	}
	if p.BaseURL() != "https://app.example.com" {
		t.Errorf("BaseURL() = %q", p.BaseURL())
	}
}

func TestCheckAvailability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	p, err := New(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	// Any HTTP answer means the target is up, even a 401.
	if err := p.CheckAvailability(context.Background()); err != nil {
		t.Errorf("CheckAvailability() error: %v", err)
	}
}

func TestGetProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "welcome")
	}))
	defer server.Close()

	p, err := New(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	result := p.Get(context.Background(), "login")
	if result.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", result.StatusCode)
	}
	if result.Body != "welcome" {
		t.Errorf("Body = %q", result.Body)
	}
	if result.Method != http.MethodGet {
		t.Errorf("Method = %q", result.Method)
	}

	missing := p.Get(context.Background(), "/admin")
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("404 probes must report their status, got %d", missing.StatusCode)
	}
	if missing.Err != "" {
		t.Errorf("a 404 is data, not an error: %q", missing.Err)
	}
}

func TestPostProbeContentType(t *testing.T) {
	var gotContentType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p, err := New(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	p.Post(context.Background(), "/api/login", `{"user":"admin"}`)
	if gotContentType != "application/json" {
		t.Errorf("JSON payload Content-Type = %q", gotContentType)
	}
	if gotBody != `{"user":"admin"}` {
		t.Errorf("body = %q", gotBody)
	}

	p.Post(context.Background(), "/login", "user=admin&pass=x")
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("form payload Content-Type = %q", gotContentType)
	}
}

func TestProbeConnectionError(t *testing.T) {
	// A closed server yields a connection error, captured on the result.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	p, err := New(url)
	if err != nil {
		t.Fatal(err)
	}
	result := p.Get(context.Background(), "/")
	if result.Err == "" {
		t.Error("connection failure should populate Err")
	}
}

func TestResolve(t *testing.T) {
	p, err := New("https://app.example.com")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want string
	}{
		{"", "https://app.example.com"},
		{"/login", "https://app.example.com/login"},
		{"login", "https://app.example.com/login"},
		{"https://app.example.com/api", "https://app.example.com/api"},
	}
	for _, tt := range tests {
		if got := p.resolve(tt.path); got != tt.want {
			t.Errorf("resolve(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestResultDescribe(t *testing.T) {
	r := Result{
		URL:        "https://app.example.com/login",
		Method:     "POST",
		Payload:    "user=admin' --",
		StatusCode: 500,
		Body:       "SQL syntax error near",
	}
	desc := r.Describe()
	for _, want := range []string{"POST https://app.example.com/login", "Payload: user=admin' --", "Status: 500", "SQL syntax error near"} {
		if !strings.Contains(desc, want) {
			t.Errorf("Describe() should contain %q, got %q", want, desc)
		}
	}

	failed := Result{URL: "https://x", Method: "GET", Err: "connection refused"}
	if !strings.Contains(failed.Describe(), "Error de conexión: connection refused") {
		t.Errorf("Describe() = %q", failed.Describe())
	}
}
