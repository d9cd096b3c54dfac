// Package audit runs an on-page SEO checklist against a single URL and
// scores the outcome.
package audit

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"seotools/internal/domain"
	"seotools/internal/fetcher"
)

// Auditor fetches one page and evaluates its on-page SEO attributes.
type Auditor struct {
	client *fetcher.Client
	logger *zap.Logger
}

// NewAuditor builds an auditor.
func NewAuditor(client *fetcher.Client, logger *zap.Logger) *Auditor {
	return &Auditor{client: client, logger: logger}
}

// Run fetches the page and executes every check. A fetch failure is
// fatal for an audit since there is nothing to inspect.
func (a *Auditor) Run(ctx context.Context, rawURL string) (*domain.AuditReport, error) {
	pageURL := rawURL
	if !strings.HasPrefix(pageURL, "http://") && !strings.HasPrefix(pageURL, "https://") {
		pageURL = "https://" + pageURL
	}
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid audit url %q", rawURL)
	}

	a.logger.Info("auditing page", zap.String("url", pageURL))

	res, err := a.client.Get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	report := &domain.AuditReport{
		URL:        pageURL,
		AuditDate:  time.Now().Format("2006-01-02 15:04:05"),
		StatusCode: res.StatusCode,
		LoadTime:   res.Elapsed.Seconds(),
		PageSizeKB: float64(len(res.Body)) / 1024,
	}

	checks := &checker{
		url:    pageURL,
		host:   parsed.Host,
		doc:    doc,
		report: report,
	}
	checks.https()
	checks.titleTag()
	checks.metaDescription()
	checks.headings()
	checks.images()
	checks.robotsMeta()
	checks.canonical()
	checks.openGraph()
	checks.schemaMarkup()
	checks.performance()
	checks.links()

	score(report)
	return report, nil
}

type checker struct {
	url    string
	host   string
	doc    *goquery.Document
	report *domain.AuditReport
}

func (c *checker) critical(element, issue string, value any) {
	c.report.Issues = append(c.report.Issues, domain.Finding{
		Severity: domain.SeverityCritical, Element: element, Issue: issue, Value: value,
	})
}

func (c *checker) warn(element, issue string, value any) {
	c.report.Warnings = append(c.report.Warnings, domain.Finding{
		Severity: domain.SeverityWarning, Element: element, Issue: issue, Value: value,
	})
}

func (c *checker) info(element, issue string, value any) {
	c.report.Warnings = append(c.report.Warnings, domain.Finding{
		Severity: domain.SeverityInfo, Element: element, Issue: issue, Value: value,
	})
}

func (c *checker) pass(element, status string, value any) {
	c.report.Passed = append(c.report.Passed, domain.Finding{
		Element: element, Status: status, Value: value,
	})
}

func (c *checker) https() {
	if strings.HasPrefix(c.url, "https://") {
		c.pass("HTTPS", "Site uses HTTPS", nil)
		return
	}
	c.critical("HTTPS", "Site not using HTTPS - security risk and ranking factor", nil)
}

func (c *checker) titleTag() {
	title := c.doc.Find("title")
	if title.Length() == 0 {
		c.critical("Title Tag", "Missing title tag", nil)
		return
	}

	text := strings.TrimSpace(title.First().Text())
	switch n := len(text); {
	case n == 0:
		c.critical("Title Tag", "Empty title tag", nil)
	case n < 30:
		c.warn("Title Tag", fmt.Sprintf("Title too short (%d chars). Recommended: 30-60 chars", n), text)
	case n > 60:
		c.warn("Title Tag", fmt.Sprintf("Title too long (%d chars). May be truncated in SERPs", n), truncate(text, 60)+"...")
	default:
		c.pass("Title Tag", "Good length", text)
	}
}

func (c *checker) metaDescription() {
	meta := c.doc.Find(`meta[name="description"]`)
	if meta.Length() == 0 {
		c.warn("Meta Description", "Missing meta description", nil)
		return
	}

	text := strings.TrimSpace(meta.First().AttrOr("content", ""))
	switch n := len(text); {
	case n == 0:
		c.warn("Meta Description", "Empty meta description", nil)
	case n < 120:
		c.warn("Meta Description", fmt.Sprintf("Description too short (%d chars). Recommended: 120-160 chars", n), text)
	case n > 160:
		c.warn("Meta Description", fmt.Sprintf("Description too long (%d chars). May be truncated", n), truncate(text, 160)+"...")
	default:
		c.pass("Meta Description", "Good length", text)
	}
}

func (c *checker) headings() {
	h1s := c.doc.Find("h1")
	switch n := h1s.Length(); {
	case n == 0:
		c.critical("H1 Tag", "No H1 tag found", nil)
	case n > 1:
		var texts []string
		h1s.Each(func(i int, s *goquery.Selection) {
			texts = append(texts, truncate(strings.TrimSpace(s.Text()), 50))
		})
		c.warn("H1 Tag", fmt.Sprintf("Multiple H1 tags found (%d). Recommended: 1 per page", n), texts)
	default:
		c.pass("H1 Tag", "Single H1 found", strings.TrimSpace(h1s.First().Text()))
	}

	census := make(map[string]int, 6)
	total := 0
	for i := 1; i <= 6; i++ {
		tag := fmt.Sprintf("h%d", i)
		n := c.doc.Find(tag).Length()
		census[strings.ToUpper(tag)] = n
		total += n
	}
	c.pass("Heading Structure", fmt.Sprintf("Total headings: %d", total), census)
}

func (c *checker) images() {
	images := c.doc.Find("img")
	var missing []string
	images.Each(func(i int, s *goquery.Selection) {
		if strings.TrimSpace(s.AttrOr("alt", "")) == "" {
			missing = append(missing, truncate(s.AttrOr("src", "unknown"), 50))
		}
	})

	if len(missing) > 0 {
		shown := missing
		if len(shown) > 5 {
			shown = shown[:5]
		}
		c.warn("Image Alt Text", fmt.Sprintf("%d images missing alt text", len(missing)), shown)
		return
	}
	c.pass("Image Alt Text", fmt.Sprintf("All %d images have alt text", images.Length()), nil)
}

func (c *checker) robotsMeta() {
	meta := c.doc.Find(`meta[name="robots"]`)
	if meta.Length() == 0 {
		c.pass("Robots Meta", "No restrictions (default indexable)", nil)
		return
	}

	content := strings.ToLower(meta.First().AttrOr("content", ""))
	switch {
	case strings.Contains(content, "noindex"):
		c.critical("Robots Meta", "Page is set to NOINDEX - will not be indexed by search engines", content)
	case strings.Contains(content, "nofollow"):
		c.warn("Robots Meta", "Page has NOFOLLOW directive", content)
	default:
		c.pass("Robots Meta", "Indexable", content)
	}
}

func (c *checker) canonical() {
	link := c.doc.Find(`link[rel="canonical"]`)
	if link.Length() == 0 {
		c.warn("Canonical URL", "No canonical URL specified", nil)
		return
	}

	canonical := link.First().AttrOr("href", "")
	c.pass("Canonical URL", "Present", canonical)
	if canonical != c.url {
		c.info("Canonical URL", "Canonical points to different URL", canonical)
	}
}

func (c *checker) openGraph() {
	required := []string{"og:title", "og:description", "og:image", "og:url"}
	var missing []string
	for _, prop := range required {
		if c.doc.Find(fmt.Sprintf(`meta[property="%s"]`, prop)).Length() == 0 {
			missing = append(missing, prop)
		}
	}

	if len(missing) > 0 {
		c.warn("Open Graph", "Missing OG tags: "+strings.Join(missing, ", "), nil)
		return
	}
	c.pass("Open Graph", "All basic OG tags present", nil)
}

func (c *checker) schemaMarkup() {
	blocks := c.doc.Find(`script[type="application/ld+json"]`).Length()
	if blocks > 0 {
		c.pass("Structured Data", fmt.Sprintf("Found %d JSON-LD block(s)", blocks), nil)
		return
	}
	c.info("Structured Data", "No JSON-LD structured data found", nil)
}

func (c *checker) performance() {
	if c.report.LoadTime > 3 {
		c.warn("Page Load Time",
			fmt.Sprintf("Slow load time: %.2fs. Recommended: < 3s", c.report.LoadTime),
			fmt.Sprintf("%.2fs", c.report.LoadTime))
	} else {
		c.pass("Page Load Time", fmt.Sprintf("Good: %.2fs", c.report.LoadTime), nil)
	}

	if c.report.PageSizeKB > 1024 {
		c.warn("Page Size",
			fmt.Sprintf("Large page size: %.2f KB", c.report.PageSizeKB),
			fmt.Sprintf("%.2f KB", c.report.PageSizeKB))
	} else {
		c.pass("Page Size", fmt.Sprintf("%.2f KB", c.report.PageSizeKB), nil)
	}
}

func (c *checker) links() {
	internal, external := 0, 0
	c.doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		switch {
		case strings.HasPrefix(href, "http"):
			if strings.Contains(href, c.host) {
				internal++
			} else {
				external++
			}
		case strings.HasPrefix(href, "/"):
			internal++
		}
	})
	c.pass("Links", fmt.Sprintf("Internal: %d, External: %d", internal, external), nil)
}

// score weights passed checks fully, warnings half, critical issues
// zero, scaled to 0-100.
func score(report *domain.AuditReport) {
	passed := len(report.Passed)
	warnings := len(report.Warnings)
	critical := len(report.Issues)
	total := passed + warnings + critical

	overall := 0.0
	if total > 0 {
		overall = (float64(passed) + 0.5*float64(warnings)) / float64(total) * 100
	}

	report.Scores = domain.AuditScores{
		Overall:        float64(int(overall*10+0.5)) / 10, // one decimal
		Passed:         passed,
		Warnings:       warnings,
		CriticalIssues: critical,
	}
}

// truncate caps s at n bytes without splitting a multibyte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
