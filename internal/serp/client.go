// Package serp issues search requests and parses the returned results
// page for organic entries and SERP features.
package serp

import (
	"context"
	"fmt"
	"net/url"

	"seotools/internal/fetcher"
	"seotools/internal/identity"
)

const defaultBaseURL = "https://www.google.com/search"

// Client performs one search request per keyword.
type Client struct {
	http     *fetcher.Client
	identity *identity.Rotator
	language string

	// BaseURL overrides the search endpoint, used by tests.
	BaseURL string
}

// NewClient builds a search client.
func NewClient(httpClient *fetcher.Client, rot *identity.Rotator, language string) *Client {
	if language == "" {
		language = "en"
	}
	return &Client{
		http:     httpClient,
		identity: rot,
		language: language,
		BaseURL:  defaultBaseURL,
	}
}

// Search fetches the results page for a keyword, requesting up to
// numResults entries.
func (c *Client) Search(ctx context.Context, keyword string, numResults int) ([]byte, error) {
	searchURL := fmt.Sprintf("%s?q=%s&num=%d&hl=%s",
		c.BaseURL, url.QueryEscape(keyword), numResults, c.language)

	res, err := c.http.GetAs(ctx, searchURL, c.identity.UserAgent())
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", keyword, err)
	}
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("search %q: unexpected status %d", keyword, res.StatusCode)
	}
	return res.Body, nil
}
