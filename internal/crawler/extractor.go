package crawler

import (
	"bytes"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// ExtractLinks parses HTML content and returns the absolute targets of
// all anchor tags, resolved against the page URL. Only http(s) targets
// are kept.
func ExtractLinks(base *url.URL, body []byte) ([]*url.URL, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var links []*url.URL
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		target := base.ResolveReference(ref)
		if target.Scheme != "http" && target.Scheme != "https" {
			return
		}
		if target.Host == "" {
			return
		}
		links = append(links, target)
	})
	return links, nil
}
