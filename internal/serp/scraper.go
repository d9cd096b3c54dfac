package serp

import (
	"context"
	"time"

	"go.uber.org/zap"

	"seotools/internal/domain"
)

// Scraper runs SERP feature analysis over a batch of keywords.
type Scraper struct {
	client     *Client
	logger     *zap.Logger
	numResults int
}

// NewScraper builds a scraper; numResults is the page size requested
// per search.
func NewScraper(client *Client, logger *zap.Logger, numResults int) *Scraper {
	if numResults <= 0 {
		numResults = 10
	}
	return &Scraper{client: client, logger: logger, numResults: numResults}
}

// AnalyzeKeyword performs one search and feature scan for a keyword.
func (s *Scraper) AnalyzeKeyword(ctx context.Context, keyword string) (*domain.SERPAnalysis, error) {
	body, err := s.client.Search(ctx, keyword, s.numResults)
	if err != nil {
		return nil, err
	}
	return Analyze(keyword, body, time.Now())
}

// AnalyzeAll processes keywords sequentially. A failed keyword is
// logged and skipped; it never aborts the batch.
func (s *Scraper) AnalyzeAll(ctx context.Context, keywords []string) ([]domain.SERPAnalysis, error) {
	var results []domain.SERPAnalysis
	for _, keyword := range keywords {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		s.logger.Info("analyzing serp", zap.String("keyword", keyword))

		analysis, err := s.AnalyzeKeyword(ctx, keyword)
		if err != nil {
			s.logger.Warn("serp analysis failed", zap.String("keyword", keyword), zap.Error(err))
			continue
		}
		results = append(results, *analysis)
	}
	return results, nil
}
