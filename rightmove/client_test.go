package rightmove

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

// newTestClient points a Client at a test server with instant backoff and a
// pinned user agent.
func newTestClient(srv *httptest.Server) *Client {
	c := NewClient(nil)
	c.baseURL = srv.URL
	c.apiURL = srv.URL + "/api/_search"
	c.lookupURL = srv.URL + "/typeahead"
	c.pickAgent = func() string { return "test-agent" }
	c.http.Backoff = func(_, _ time.Duration, _ int, _ *http.Response) time.Duration { return 0 }
	return c
}

func TestFetchRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	body, ok := c.fetch(context.Background(), srv.URL, nil, fetchOpts{})
	if ok || body != "" {
		t.Errorf("expected soft failure, got ok=%v body=%q", ok, body)
	}
	if attempts != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", attempts)
	}
}

func TestFetchBlockedAbortsImmediately(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	if _, ok := c.fetch(context.Background(), srv.URL, nil, fetchOpts{}); ok {
		t.Error("expected failure on 403")
	}
	if attempts != 1 {
		t.Errorf("expected exactly 1 attempt on a block, got %d", attempts)
	}
}

func TestFetchRecoversAfterRateLimit(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	body, ok := c.fetch(context.Background(), srv.URL, nil, fetchOpts{})
	if !ok || body != "payload" {
		t.Errorf("expected recovery after 429, got ok=%v body=%q", ok, body)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestFetchSendsHeadersAndParams(t *testing.T) {
	var gotUA, gotAccept, gotReferer, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotReferer = r.Header.Get("Referer")
		gotQuery = r.URL.RawQuery
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	params := url.Values{}
	params.Set("query", "clapham")
	_, ok := c.fetch(context.Background(), srv.URL, params, fetchOpts{referer: "https://example.org/", accept: "application/json"})
	if !ok {
		t.Fatal("fetch failed")
	}
	if gotUA != "test-agent" {
		t.Errorf("user agent = %q", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("accept = %q", gotAccept)
	}
	if gotReferer != "https://example.org/" {
		t.Errorf("referer = %q", gotReferer)
	}
	if gotQuery != "query=clapham" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestBackoffSchedule(t *testing.T) {
	rl := &http.Response{StatusCode: http.StatusTooManyRequests}
	plain := &http.Response{StatusCode: http.StatusInternalServerError}

	tests := []struct {
		attempt int
		resp    *http.Response
		want    time.Duration
	}{
		{0, rl, 2 * time.Second},
		{1, rl, 4 * time.Second},
		{0, plain, 1 * time.Second},
		{1, plain, 2 * time.Second},
		{0, nil, 1 * time.Second},
	}
	for _, tt := range tests {
		if got := backoff(0, 0, tt.attempt, tt.resp); got != tt.want {
			t.Errorf("backoff(attempt=%d, resp=%v) = %v, want %v", tt.attempt, tt.resp, got, tt.want)
		}
	}
}
