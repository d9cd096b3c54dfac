package domain

import "time"

// Issue categories assigned to every crawl outcome.
const (
	IssueOK            = "OK"
	IssueRedirectChain = "Redirect Chain"
	IssueBrokenLink    = "Broken Link"
	IssueServerError   = "Server Error"
	IssueError         = "Error"
)

// CrawlResult records the outcome of checking a single URL.
type CrawlResult struct {
	URL           string
	StatusCode    int // 0 when the request never completed
	RedirectChain int
	FinalURL      string
	ResponseTime  float64 // seconds
	Error         string
	IssueType     string
	Timestamp     time.Time
}

// CrawlSummary aggregates crawl results by issue category.
type CrawlSummary struct {
	Total        int
	OK           int
	Redirects    int
	Broken       int
	ServerErrors int
	Errors       int
}

// RankResult records where a domain ranks for one keyword.
type RankResult struct {
	Keyword       string    `json:"keyword"`
	Domain        string    `json:"domain"`
	Position      int       `json:"position"` // 0 = not in top results
	RankingURL    string    `json:"ranking_url"`
	PageTitle     string    `json:"page_title"`
	FoundInTop100 bool      `json:"found_in_top_100"`
	TotalResults  int       `json:"total_results_found"`
	CheckDate     string    `json:"check_date"`
	CheckTime     string    `json:"check_time"`
	Timestamp     time.Time `json:"timestamp"`
}

// OrganicResult is one organic entry parsed from a results page.
type OrganicResult struct {
	Position int    `json:"position"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Snippet  string `json:"snippet"`
}
