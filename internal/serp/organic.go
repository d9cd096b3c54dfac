package serp

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seotools/internal/domain"
)

const maxSnippetLen = 200

// ParseOrganic extracts organic result blocks from a results page.
// Positions are 1-based over the result blocks; blocks without a link
// are skipped but still occupy a position.
func ParseOrganic(body []byte) ([]domain.OrganicResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var results []domain.OrganicResult
	doc.Find("div.g").Each(func(i int, s *goquery.Selection) {
		link := s.Find("a").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		title := strings.TrimSpace(s.Find("h3").First().Text())
		if title == "" {
			title = "No title"
		}
		snippet := truncate(strings.TrimSpace(s.Find("div.VwiC3b").First().Text()), maxSnippetLen)

		results = append(results, domain.OrganicResult{
			Position: i + 1,
			URL:      href,
			Title:    title,
			Snippet:  snippet,
		})
	})
	return results, nil
}

// CountOrganic counts organic blocks whose first link points at an
// http(s) target.
func CountOrganic(doc *goquery.Document) int {
	count := 0
	doc.Find("div.g").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Find("a").First().Attr("href")
		if ok && strings.HasPrefix(href, "http") {
			count++
		}
	})
	return count
}
