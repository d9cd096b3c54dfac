package fetcher

import (
	"compress/gzip"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
)

func newTestClient(t *testing.T, opts Options) *Client {
	t.Helper()
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestGetCountsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/mid", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/mid", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("done"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, Options{})
	res, err := c.Get(context.Background(), srv.URL+"/start")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
	if res.RedirectChain != 2 {
		t.Errorf("redirect chain = %d, want 2", res.RedirectChain)
	}
	if want := srv.URL + "/final"; res.FinalURL != want {
		t.Errorf("final url = %q, want %q", res.FinalURL, want)
	}
	if res.Elapsed <= 0 {
		t.Error("expected a positive elapsed duration")
	}
}

func TestGetNoRedirectKeepsRequestURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := newTestClient(t, Options{})
	res, err := c.Get(context.Background(), srv.URL+"/page")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.RedirectChain != 0 {
		t.Errorf("redirect chain = %d, want 0", res.RedirectChain)
	}
	if want := srv.URL + "/page"; res.FinalURL != want {
		t.Errorf("final url = %q, want %q", res.FinalURL, want)
	}
}

func TestGetDecodesGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Type", "text/html")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("<html>compressed</html>"))
		gz.Close()
	}))
	defer srv.Close()

	c := newTestClient(t, Options{})
	res, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := string(res.Body); got != "<html>compressed</html>" {
		t.Errorf("body = %q", got)
	}
	if !res.IsHTML() {
		t.Error("expected IsHTML to be true")
	}
}

func TestGetDecodesBrotli(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		bw := brotli.NewWriter(w)
		bw.Write([]byte("brotli body"))
		bw.Close()
	}))
	defer srv.Close()

	c := newTestClient(t, Options{})
	res, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := string(res.Body); got != "brotli body" {
		t.Errorf("body = %q", got)
	}
}

func TestGetClosesConnectionOnDecodeError(t *testing.T) {
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write([]byte(strings.Repeat("not gzip at all ", 64)))
	}))
	var open int32
	srv.Config.ConnState = func(conn net.Conn, state http.ConnState) {
		switch state {
		case http.StateNew:
			atomic.AddInt32(&open, 1)
		case http.StateClosed:
			atomic.AddInt32(&open, -1)
		}
	}
	srv.Start()
	defer srv.Close()

	c := newTestClient(t, Options{})
	_, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected gzip decode error")
	}
	if !strings.Contains(err.Error(), "gzip decode") {
		t.Errorf("unexpected error: %v", err)
	}

	// The body close must release the connection even on the decode
	// error path. Close is asynchronous, so poll briefly.
	c.transport.CloseIdleConnections()
	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&open) > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("%d connection(s) left open after decode error", atomic.LoadInt32(&open))
		}
		time.Sleep(10 * time.Millisecond)
		c.transport.CloseIdleConnections()
	}
}

func TestGetTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestClient(t, Options{Timeout: 50 * time.Millisecond})
	_, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if got := DescribeError(err); got != "Timeout" {
		t.Errorf("DescribeError = %q, want Timeout", got)
	}
}

func TestGetConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := srv.URL
	srv.Close()

	c := newTestClient(t, Options{Timeout: time.Second})
	_, err := c.Get(context.Background(), target)
	if err == nil {
		t.Fatal("expected connection error")
	}
	if got := DescribeError(err); got != "Connection Error" {
		t.Errorf("DescribeError = %q, want Connection Error", got)
	}
}

func TestGetBodyCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	c := newTestClient(t, Options{MaxBodyBytes: 10})
	_, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected body size error")
	}
	if !strings.Contains(err.Error(), "exceeds limit") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGetSendsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := newTestClient(t, Options{UserAgent: "seotools-bot/1.0"})
	if _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "seotools-bot/1.0" {
		t.Errorf("user agent = %q", got)
	}

	if _, err := c.GetAs(context.Background(), srv.URL, "other-agent"); err != nil {
		t.Fatalf("GetAs: %v", err)
	}
	if got != "other-agent" {
		t.Errorf("user agent = %q, want other-agent", got)
	}
}
