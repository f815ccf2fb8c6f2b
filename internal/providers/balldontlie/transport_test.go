package balldontlie

import (
	"net/http"
	"testing"
	"time"
)

func TestNormalizeBaseURLTrimsTrailingSlashAndDefaults(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"", defaultBaseURL},
		{"https://api.example.com/", "https://api.example.com"},
		{"https://api.example.com", "https://api.example.com"},
	}

	for _, c := range cases {
		if got := normalizeBaseURL(c.input); got != c.expected {
			t.Fatalf("expected %s, got %s", c.expected, got)
		}
	}
}

func TestResolveHTTPClientDefaultsTimeout(t *testing.T) {
	client := resolveHTTPClient(nil)
	httpClient, ok := client.(*http.Client)
	if !ok {
		t.Fatalf("expected *http.Client, got %T", client)
	}
	if httpClient.Timeout != defaultHTTPTimeout {
		t.Fatalf("expected timeout %s, got %s", defaultHTTPTimeout, httpClient.Timeout)
	}
}

func TestResolveHTTPClientUsesProvidedClient(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}
	client := resolveHTTPClient(custom)
	if client != custom {
		t.Fatalf("expected provided client to be used")
	}
}

func TestResolvePerPage(t *testing.T) {
	cases := map[int]int{0: defaultPerPage, -3: defaultPerPage, 10: 10, 100: 100, 250: maxPerPage}
	for input, expected := range cases {
		if got := resolvePerPage(input); got != expected {
			t.Fatalf("resolvePerPage(%d) = %d, want %d", input, got, expected)
		}
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		raw      string
		expected time.Duration
	}{
		{"", defaultRetryAfter},
		{"  ", defaultRetryAfter},
		{"0", 0},
		{"30", 30 * time.Second},
		{"-4", defaultRetryAfter},
		{"abc", defaultRetryAfter},
		{now.Add(7 * time.Second).Format(http.TimeFormat), 7 * time.Second},
		{now.Add(-time.Minute).Format(http.TimeFormat), 0},
	}

	for _, c := range cases {
		if got := parseRetryAfter(c.raw, now); got != c.expected {
			t.Fatalf("parseRetryAfter(%q) = %s, want %s", c.raw, got, c.expected)
		}
	}
}
