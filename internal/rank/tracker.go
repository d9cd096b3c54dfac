// Package rank looks up where a domain ranks in organic search results
// for a set of keywords.
package rank

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"seotools/internal/domain"
	"seotools/internal/serp"
)

const topResults = 100

// Tracker checks keyword rankings for one domain.
type Tracker struct {
	domain string
	client *serp.Client
	logger *zap.Logger
}

// NewTracker builds a tracker for the given domain.
func NewTracker(domainName string, client *serp.Client, logger *zap.Logger) *Tracker {
	return &Tracker{
		domain: strings.ToLower(domainName),
		client: client,
		logger: logger,
	}
}

// CheckKeyword issues one search for the keyword and returns the
// 1-based position of the first organic result whose URL contains the
// tracked domain. Position stays 0 when the domain is absent from the
// top 100.
func (t *Tracker) CheckKeyword(ctx context.Context, keyword string) (domain.RankResult, error) {
	body, err := t.client.Search(ctx, keyword, topResults)
	if err != nil {
		return domain.RankResult{}, err
	}

	organic, err := serp.ParseOrganic(body)
	if err != nil {
		return domain.RankResult{}, err
	}

	now := time.Now()
	result := domain.RankResult{
		Keyword:      keyword,
		Domain:       t.domain,
		TotalResults: len(organic),
		CheckDate:    now.Format("2006-01-02"),
		CheckTime:    now.Format("15:04:05"),
		Timestamp:    now,
	}

	for _, entry := range organic {
		if strings.Contains(strings.ToLower(entry.URL), t.domain) {
			result.Position = entry.Position
			result.RankingURL = entry.URL
			result.PageTitle = entry.Title
			result.FoundInTop100 = true
			break
		}
	}
	return result, nil
}

// TrackAll checks every keyword sequentially. A failed keyword is
// logged and skipped; it never aborts the batch.
func (t *Tracker) TrackAll(ctx context.Context, keywords []string) ([]domain.RankResult, error) {
	var results []domain.RankResult
	for _, keyword := range keywords {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		t.logger.Info("checking keyword", zap.String("keyword", keyword))

		result, err := t.CheckKeyword(ctx, keyword)
		if err != nil {
			t.logger.Warn("rank check failed", zap.String("keyword", keyword), zap.Error(err))
			continue
		}
		if result.FoundInTop100 {
			t.logger.Info("keyword ranked",
				zap.String("keyword", keyword),
				zap.Int("position", result.Position))
		} else {
			t.logger.Info("keyword not in top 100", zap.String("keyword", keyword))
		}
		results = append(results, result)
	}
	return results, nil
}

// Summary breaks tracked keywords down by position band.
type Summary struct {
	Total     int
	Top10     int
	Top20     int // positions 11-20
	Top50     int // positions 21-50
	Top100    int // positions 51-100
	NotRanked int
	Best      []domain.RankResult // top-10 results, best first, at most 5
}

// Summarize computes the position-band breakdown for a result set.
func Summarize(results []domain.RankResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case !r.FoundInTop100:
			s.NotRanked++
		case r.Position <= 10:
			s.Top10++
			s.Best = append(s.Best, r)
		case r.Position <= 20:
			s.Top20++
		case r.Position <= 50:
			s.Top50++
		default:
			s.Top100++
		}
	}
	sort.Slice(s.Best, func(i, j int) bool { return s.Best[i].Position < s.Best[j].Position })
	if len(s.Best) > 5 {
		s.Best = s.Best[:5]
	}
	return s
}
