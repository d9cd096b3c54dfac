package serp

import (
	"testing"
	"time"
)

const featureRichPage = `<html><body>
<div class="xpdopen">
  <a href="https://snippet-source.example/answer">The quick answer to the query.</a>
</div>
<div class="related-question-pair">What is a widget?</div>
<div class="related-question-pair">How do widgets work?</div>
<div class="kp-wholepage">
  <h2>Widget Corp</h2>
  <div data-attrid="subtitle">Manufacturing company</div>
  <div class="kno-rdesc">Widget Corp makes widgets.</div>
</div>
<div class="rllt__details"><div class="dbg0pd">Widget Store Downtown</div></div>
<div class="rllt__details"><div class="dbg0pd">Widget Store North</div></div>
<g-scrolling-carousel><a href="/watch">Video: widgets explained</a></g-scrolling-carousel>
<div id="imagebox_bigimages"></div>
<div class="usJj9c"><a href="/about">About</a></div>
<g-section-with-header>Top stories<a href="/news/1">Widget prices soar</a></g-section-with-header>
<div class="g"><a href="https://organic.example/1"><h3>Organic one</h3></a></div>
<div class="g"><a href="https://organic.example/2"><h3>Organic two</h3></a></div>
</body></html>`

func TestAnalyzeDetectsFeatures(t *testing.T) {
	now := time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)
	a, err := Analyze("widgets", []byte(featureRichPage), now)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if a.Keyword != "widgets" {
		t.Errorf("keyword = %q", a.Keyword)
	}
	if a.CheckDate != "2026-08-23" || a.CheckTime != "14:30:00" {
		t.Errorf("date/time = %q %q", a.CheckDate, a.CheckTime)
	}

	if !a.FeaturedSnippet.Present {
		t.Error("featured snippet not detected")
	}
	if a.FeaturedSnippet.SourceURL != "https://snippet-source.example/answer" {
		t.Errorf("snippet source = %q", a.FeaturedSnippet.SourceURL)
	}

	if !a.PeopleAlsoAsk.Present || a.PeopleAlsoAsk.Count != 2 {
		t.Errorf("PAA = %+v, want 2 questions", a.PeopleAlsoAsk)
	}

	if !a.KnowledgePanel.Present {
		t.Error("knowledge panel not detected")
	}
	if a.KnowledgePanel.Title != "Widget Corp" {
		t.Errorf("panel title = %q", a.KnowledgePanel.Title)
	}
	if a.KnowledgePanel.Subtitle != "Manufacturing company" {
		t.Errorf("panel subtitle = %q", a.KnowledgePanel.Subtitle)
	}

	if !a.LocalPack.Present || a.LocalPack.Count != 2 {
		t.Errorf("local pack = %+v", a.LocalPack)
	}
	if a.LocalPack.Businesses[0] != "Widget Store Downtown" {
		t.Errorf("business = %q", a.LocalPack.Businesses[0])
	}

	if !a.VideoResults.Present || a.VideoResults.Count != 1 {
		t.Errorf("video results = %+v", a.VideoResults)
	}
	if !a.ImagePack.Present {
		t.Error("image pack not detected")
	}
	if !a.SiteLinks.Present || a.SiteLinks.Count != 1 {
		t.Errorf("sitelinks = %+v", a.SiteLinks)
	}
	if !a.TopStories.Present || a.TopStories.Headlines[0] != "Widget prices soar" {
		t.Errorf("top stories = %+v", a.TopStories)
	}
	if a.OrganicResults.Count != 2 {
		t.Errorf("organic count = %d, want 2", a.OrganicResults.Count)
	}
}

func TestAnalyzeBarePage(t *testing.T) {
	a, err := Analyze("plain", []byte("<html><body><p>just text</p></body></html>"), time.Now())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if a.FeaturedSnippet.Present || a.PeopleAlsoAsk.Present || a.KnowledgePanel.Present ||
		a.LocalPack.Present || a.VideoResults.Present || a.ImagePack.Present ||
		a.SiteLinks.Present || a.TopStories.Present {
		t.Errorf("no features expected on a bare page: %+v", a)
	}
	if a.OrganicResults.Count != 0 {
		t.Errorf("organic count = %d, want 0", a.OrganicResults.Count)
	}
}

func TestVideoCarouselWithoutVideoText(t *testing.T) {
	page := `<g-scrolling-carousel><a href="/x">unrelated carousel</a></g-scrolling-carousel>`
	a, err := Analyze("q", []byte(page), time.Now())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.VideoResults.Present {
		t.Error("carousel without video content should not count as video results")
	}
}
