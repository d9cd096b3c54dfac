package fetcher

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/time/rate"
)

const maxRedirects = 10

// Options controls HTTP fetching behaviour.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
	Delay        time.Duration // minimum spacing between requests
	ProxyURL     string
}

// Result is the outcome of a completed fetch. RedirectChain counts the
// hops that were followed before the final response.
type Result struct {
	StatusCode    int
	RedirectChain int
	FinalURL      string
	Body          []byte
	ContentType   string
	Elapsed       time.Duration
}

// IsHTML reports whether the response looks like an HTML document.
func (r *Result) IsHTML() bool {
	return strings.Contains(r.ContentType, "text/html")
}

// Client fetches pages sequentially, honouring a polite delay between
// requests when one is configured.
type Client struct {
	transport    *http.Transport
	timeout      time.Duration
	userAgent    string
	maxBodyBytes int64
	limiter      *rate.Limiter
}

// New constructs a fetch client using the provided options.
func New(opts Options) (*Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 5 * 1024 * 1024 // 5MB cap
	}

	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if strings.TrimSpace(opts.ProxyURL) != "" {
		proxyURL, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	c := &Client{
		transport:    transport,
		timeout:      opts.Timeout,
		userAgent:    opts.UserAgent,
		maxBodyBytes: opts.MaxBodyBytes,
	}
	if opts.Delay > 0 {
		c.limiter = rate.NewLimiter(rate.Every(opts.Delay), 1)
	}
	return c, nil
}

// Get fetches a single URL with the client's default user agent.
func (c *Client) Get(ctx context.Context, rawURL string) (*Result, error) {
	return c.do(ctx, rawURL, c.userAgent)
}

// GetAs fetches a single URL presenting the given user agent.
func (c *Client) GetAs(ctx context.Context, rawURL, userAgent string) (*Result, error) {
	return c.do(ctx, rawURL, userAgent)
}

func (c *Client) do(ctx context.Context, rawURL, userAgent string) (*Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	// A fresh client per request lets CheckRedirect count hops for this
	// fetch alone; the transport and its connection pool are shared.
	hops := 0
	httpClient := &http.Client{
		Transport: c.transport,
		Timeout:   c.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			hops++
			return nil
		},
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http fetch failed: %w", err)
	}

	body, err := c.readBody(resp)
	if err != nil {
		return nil, err
	}

	finalURL := rawURL
	if hops > 0 && resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Result{
		StatusCode:    resp.StatusCode,
		RedirectChain: hops,
		FinalURL:      finalURL,
		Body:          body,
		ContentType:   resp.Header.Get("Content-Type"),
		Elapsed:       time.Since(start),
	}, nil
}

func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	if resp == nil || resp.Body == nil {
		return nil, errors.New("empty response body")
	}
	defer resp.Body.Close()

	reader := io.Reader(resp.Body)
	var closers []io.Closer

	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch encoding {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip decode: %w", err)
		}
		reader = gz
		closers = append(closers, gz)
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "deflate":
		fl := flate.NewReader(resp.Body)
		reader = fl
		closers = append(closers, fl)
	}

	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
	}()

	limited := io.LimitReader(reader, c.maxBodyBytes+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("response body exceeds limit of %d bytes", c.maxBodyBytes)
	}
	return body, nil
}

// DescribeError maps a fetch error to the short cause recorded in
// crawl reports: "Timeout", "Connection Error", or the error text.
func DescribeError(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Timeout"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Timeout"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "Connection Error"
	}
	return err.Error()
}
