package serp

import (
	"bytes"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"seotools/internal/domain"
)

const maxSnippetContent = 500

// Analyze scans a results page for the known SERP feature blocks and
// returns one analysis record for the keyword.
func Analyze(keyword string, body []byte, now time.Time) (*domain.SERPAnalysis, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return &domain.SERPAnalysis{
		Keyword:         keyword,
		CheckDate:       now.Format("2006-01-02"),
		CheckTime:       now.Format("15:04:05"),
		FeaturedSnippet: extractFeaturedSnippet(doc),
		PeopleAlsoAsk:   extractPeopleAlsoAsk(doc),
		KnowledgePanel:  extractKnowledgePanel(doc),
		LocalPack:       extractLocalPack(doc),
		VideoResults:    extractVideoResults(doc),
		ImagePack:       extractImagePack(doc),
		SiteLinks:       extractSiteLinks(doc),
		TopStories:      extractTopStories(doc),
		OrganicResults:  domain.OrganicSummary{Count: CountOrganic(doc)},
	}, nil
}

func extractFeaturedSnippet(doc *goquery.Document) domain.FeaturedSnippet {
	block := doc.Find("div.xpdopen").First()
	if block.Length() == 0 {
		block = doc.Find("div.kp-blk").First()
	}
	if block.Length() == 0 {
		return domain.FeaturedSnippet{}
	}

	content := truncate(collapseSpace(block.Text()), maxSnippetContent)
	source, _ := block.Find("a").First().Attr("href")
	return domain.FeaturedSnippet{Present: true, Content: content, SourceURL: source}
}

func extractPeopleAlsoAsk(doc *goquery.Document) domain.PeopleAlsoAsk {
	var questions []string
	doc.Find("div.related-question-pair").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if q := collapseSpace(s.Text()); q != "" {
			questions = append(questions, q)
		}
		return len(questions) < 5
	})
	return domain.PeopleAlsoAsk{
		Present:   len(questions) > 0,
		Count:     len(questions),
		Questions: questions,
	}
}

func extractKnowledgePanel(doc *goquery.Document) domain.KnowledgePanel {
	panel := doc.Find("div.kp-wholepage").First()
	if panel.Length() == 0 {
		panel = doc.Find("div.knowledge-panel").First()
	}
	if panel.Length() == 0 {
		return domain.KnowledgePanel{}
	}

	desc := truncate(collapseSpace(panel.Find("div.kno-rdesc").First().Text()), 300)
	return domain.KnowledgePanel{
		Present:     true,
		Title:       collapseSpace(panel.Find("h2").First().Text()),
		Subtitle:    collapseSpace(panel.Find("div[data-attrid=subtitle]").First().Text()),
		Description: desc,
	}
}

func extractLocalPack(doc *goquery.Document) domain.LocalPack {
	items := doc.Find("div.rllt__details")
	if items.Length() == 0 {
		return domain.LocalPack{}
	}

	var businesses []string
	items.EachWithBreak(func(i int, s *goquery.Selection) bool {
		name := collapseSpace(s.Find("div.dbg0pd").First().Text())
		if name == "" {
			name = "Unknown"
		}
		businesses = append(businesses, name)
		return len(businesses) < 3
	})
	return domain.LocalPack{Present: true, Count: len(businesses), Businesses: businesses}
}

func extractVideoResults(doc *goquery.Document) domain.VideoResults {
	carousel := doc.Find("g-scrolling-carousel").First()
	if carousel.Length() == 0 {
		return domain.VideoResults{}
	}
	markup, err := goquery.OuterHtml(carousel)
	if err != nil || !strings.Contains(strings.ToLower(markup), "video") {
		return domain.VideoResults{}
	}

	var titles []string
	carousel.Find("a").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if t := collapseSpace(s.Text()); t != "" {
			titles = append(titles, t)
		}
		return len(titles) < 3
	})
	return domain.VideoResults{
		Present: len(titles) > 0,
		Count:   len(titles),
		Videos:  titles,
	}
}

func extractImagePack(doc *goquery.Document) domain.ImagePack {
	return domain.ImagePack{Present: doc.Find("#imagebox_bigimages").Length() > 0}
}

func extractSiteLinks(doc *goquery.Document) domain.SiteLinks {
	var links []string
	doc.Find("div.usJj9c").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if t := collapseSpace(s.Text()); t != "" {
			links = append(links, t)
		}
		return len(links) < 6
	})
	return domain.SiteLinks{
		Present: len(links) > 0,
		Count:   len(links),
		Links:   links,
	}
}

func extractTopStories(doc *goquery.Document) domain.TopStories {
	section := doc.Find("g-section-with-header").First()
	if section.Length() == 0 {
		section = doc.Find("div.top-stories").First()
	}
	if section.Length() == 0 {
		return domain.TopStories{}
	}
	markup, err := goquery.OuterHtml(section)
	if err != nil {
		return domain.TopStories{}
	}
	lower := strings.ToLower(markup)
	if !strings.Contains(lower, "news") && !strings.Contains(lower, "stories") {
		return domain.TopStories{}
	}

	var headlines []string
	section.Find("a").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if t := collapseSpace(s.Text()); t != "" {
			headlines = append(headlines, t)
		}
		return len(headlines) < 3
	})
	return domain.TopStories{
		Present:   len(headlines) > 0,
		Count:     len(headlines),
		Headlines: headlines,
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
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
