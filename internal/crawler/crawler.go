package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"seotools/internal/domain"
	"seotools/internal/fetcher"
)

// ErrInvalidSeed is returned when the seed URL is not an absolute
// http(s) URL.
var ErrInvalidSeed = errors.New("seed must be an absolute http or https URL")

// Crawler walks a site breadth-first from a seed URL, within one host,
// up to a page ceiling, recording one result per fetch attempt.
type Crawler struct {
	seed     *url.URL
	maxPages int
	client   *fetcher.Client
	logger   *zap.Logger

	frontier []string
	visited  map[string]struct{}
	results  []domain.CrawlResult
}

// New validates the seed and ceiling and prepares a crawler.
func New(seedURL string, maxPages int, client *fetcher.Client, logger *zap.Logger) (*Crawler, error) {
	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("parse seed url: %w", err)
	}
	if (seed.Scheme != "http" && seed.Scheme != "https") || seed.Host == "" {
		return nil, ErrInvalidSeed
	}
	if maxPages <= 0 {
		return nil, fmt.Errorf("max pages must be positive, got %d", maxPages)
	}

	c := &Crawler{
		seed:     seed,
		maxPages: maxPages,
		client:   client,
		logger:   logger,
		visited:  make(map[string]struct{}),
	}
	start := normalizeURL(seed)
	c.frontier = append(c.frontier, start)
	c.visited[start] = struct{}{}
	return c, nil
}

// Run executes the crawl until the frontier drains or the page ceiling
// is reached. Hitting the ceiling is the expected bound, not an error.
func (c *Crawler) Run(ctx context.Context) ([]domain.CrawlResult, error) {
	c.logger.Info("starting crawl",
		zap.String("seed", c.seed.String()),
		zap.Int("max_pages", c.maxPages))

	for len(c.frontier) > 0 && len(c.results) < c.maxPages {
		if err := ctx.Err(); err != nil {
			return c.results, err
		}

		current := c.frontier[0]
		c.frontier = c.frontier[1:]

		c.logger.Info("checking url",
			zap.Int("page", len(c.results)+1),
			zap.Int("max_pages", c.maxPages),
			zap.String("url", current))

		c.checkURL(ctx, current)
	}

	c.logger.Info("crawl complete", zap.Int("pages_checked", len(c.results)))
	return c.results, nil
}

func (c *Crawler) checkURL(ctx context.Context, current string) {
	record := domain.CrawlResult{
		URL:       current,
		FinalURL:  current,
		Timestamp: time.Now(),
	}

	res, err := c.client.Get(ctx, current)
	if err != nil {
		record.Error = fetcher.DescribeError(err)
		record.IssueType = domain.IssueError
		c.logger.Warn("fetch failed", zap.String("url", current), zap.Error(err))
		c.results = append(c.results, record)
		return
	}

	record.StatusCode = res.StatusCode
	record.RedirectChain = res.RedirectChain
	record.FinalURL = res.FinalURL
	record.ResponseTime = res.Elapsed.Seconds()
	record.IssueType = classify(res.StatusCode, res.RedirectChain)
	c.results = append(c.results, record)

	if res.StatusCode == http.StatusOK && res.IsHTML() {
		c.enqueueLinks(current, res.Body)
	}
}

// enqueueLinks parses the page for anchors and schedules unseen
// same-host targets. Unparseable HTML contributes zero links.
func (c *Crawler) enqueueLinks(pageURL string, body []byte) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return
	}
	links, err := ExtractLinks(base, body)
	if err != nil {
		c.logger.Warn("link extraction failed", zap.String("url", pageURL), zap.Error(err))
		return
	}
	for _, link := range links {
		if !strings.EqualFold(link.Host, c.seed.Host) {
			continue
		}
		normalized := normalizeURL(link)
		if _, seen := c.visited[normalized]; seen {
			continue
		}
		c.visited[normalized] = struct{}{}
		c.frontier = append(c.frontier, normalized)
	}
}

// Results returns the records accumulated so far.
func (c *Crawler) Results() []domain.CrawlResult {
	return c.results
}

// Summary counts results per issue category.
func (c *Crawler) Summary() domain.CrawlSummary {
	return Summarize(c.results)
}

// Summarize aggregates crawl results by issue category.
func Summarize(results []domain.CrawlResult) domain.CrawlSummary {
	s := domain.CrawlSummary{Total: len(results)}
	for _, r := range results {
		switch r.IssueType {
		case domain.IssueOK:
			s.OK++
		case domain.IssueRedirectChain:
			s.Redirects++
		case domain.IssueBrokenLink:
			s.Broken++
		case domain.IssueServerError:
			s.ServerErrors++
		case domain.IssueError:
			s.Errors++
		}
	}
	return s
}

// classify maps a completed response to an issue category. A 4xx wins
// over a preceding redirect so that "404 is always a broken link"
// holds even behind a hop.
func classify(status, redirects int) string {
	switch {
	case status >= 400 && status < 500:
		return domain.IssueBrokenLink
	case status >= 500 && status < 600:
		return domain.IssueServerError
	case redirects > 0:
		return domain.IssueRedirectChain
	default:
		return domain.IssueOK
	}
}

// normalizeURL strips the fragment and gives an empty path an explicit
// "/" so that in-page anchors and the bare host collapse to one
// frontier entry.
func normalizeURL(u *url.URL) string {
	clean := *u
	clean.Fragment = ""
	if clean.Path == "" {
		clean.Path = "/"
	}
	return clean.String()
}
