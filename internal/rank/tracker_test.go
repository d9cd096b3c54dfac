package rank

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"seotools/internal/domain"
	"seotools/internal/fetcher"
	"seotools/internal/identity"
	"seotools/internal/serp"
)

const serpPage = `<html><body>
<div class="g"><a href="https://bigbrand.example/landing"><h3>Big Brand</h3></a></div>
<div class="g"><a href="https://MySite.example/blog/post"><h3>My Site Post</h3></a></div>
<div class="g"><a href="https://another.example/x"><h3>Another</h3></a></div>
</body></html>`

func newTestTracker(t *testing.T, domainName string, handler http.Handler) *Tracker {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	httpClient, err := fetcher.New(fetcher.Options{Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("fetcher.New: %v", err)
	}
	client := serp.NewClient(httpClient, identity.NewRotator(nil, nil), "en")
	client.BaseURL = srv.URL
	return NewTracker(domainName, client, zap.NewNop())
}

func serveSERP(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(serpPage))
}

func TestCheckKeywordFindsDomain(t *testing.T) {
	tracker := newTestTracker(t, "mysite.example", http.HandlerFunc(serveSERP))

	result, err := tracker.CheckKeyword(context.Background(), "seo tools")
	if err != nil {
		t.Fatalf("CheckKeyword: %v", err)
	}
	if !result.FoundInTop100 {
		t.Fatal("domain should be found")
	}
	if result.Position != 2 {
		t.Errorf("position = %d, want 2", result.Position)
	}
	if result.RankingURL != "https://MySite.example/blog/post" {
		t.Errorf("ranking url = %q", result.RankingURL)
	}
	if result.PageTitle != "My Site Post" {
		t.Errorf("page title = %q", result.PageTitle)
	}
	if result.TotalResults != 3 {
		t.Errorf("total results = %d, want 3", result.TotalResults)
	}
}

func TestCheckKeywordDomainAbsent(t *testing.T) {
	tracker := newTestTracker(t, "nomatch.test", http.HandlerFunc(serveSERP))

	result, err := tracker.CheckKeyword(context.Background(), "xyz")
	if err != nil {
		t.Fatalf("CheckKeyword: %v", err)
	}
	if result.FoundInTop100 {
		t.Error("domain should not be found")
	}
	if result.Position != 0 {
		t.Errorf("position = %d, want 0", result.Position)
	}
	if result.RankingURL != "" || result.PageTitle != "" {
		t.Errorf("unexpected match fields: %q %q", result.RankingURL, result.PageTitle)
	}
}

func TestTrackAllSkipsFailures(t *testing.T) {
	tracker := newTestTracker(t, "mysite.example", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "broken" {
			http.Error(w, "blocked", http.StatusForbidden)
			return
		}
		serveSERP(w, r)
	}))

	results, err := tracker.TrackAll(context.Background(), []string{"one", "broken", "two"})
	if err != nil {
		t.Fatalf("TrackAll: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}

func TestSummarize(t *testing.T) {
	results := []domain.RankResult{
		{Keyword: "a", Position: 3, FoundInTop100: true},
		{Keyword: "b", Position: 1, FoundInTop100: true},
		{Keyword: "c", Position: 15, FoundInTop100: true},
		{Keyword: "d", Position: 40, FoundInTop100: true},
		{Keyword: "e", Position: 90, FoundInTop100: true},
		{Keyword: "f"},
	}

	s := Summarize(results)
	if s.Total != 6 || s.Top10 != 2 || s.Top20 != 1 || s.Top50 != 1 || s.Top100 != 1 || s.NotRanked != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if len(s.Best) != 2 || s.Best[0].Keyword != "b" || s.Best[1].Keyword != "a" {
		t.Errorf("best keywords not sorted by position: %+v", s.Best)
	}
}
