// Package export writes collected results to flat CSV and JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"seotools/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

// CrawlCSVHeader is the column list of the crawl report.
var CrawlCSVHeader = []string{
	"url", "status_code", "redirect_chain", "final_url",
	"response_time", "error", "issue_type", "timestamp",
}

// RankCSVHeader is the column list of the ranking report.
var RankCSVHeader = []string{
	"keyword", "domain", "position", "ranking_url", "page_title",
	"found_in_top_100", "total_results_found", "check_date",
	"check_time", "timestamp",
}

// WriteCrawlCSV writes one row per crawl result, header first.
func WriteCrawlCSV(path string, results []domain.CrawlResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(CrawlCSVHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write(crawlRow(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func crawlRow(r domain.CrawlResult) []string {
	status := ""
	if r.StatusCode != 0 {
		status = strconv.Itoa(r.StatusCode)
	}
	return []string{
		r.URL,
		status,
		strconv.Itoa(r.RedirectChain),
		r.FinalURL,
		strconv.FormatFloat(r.ResponseTime, 'f', 2, 64),
		r.Error,
		r.IssueType,
		r.Timestamp.Format(timestampLayout),
	}
}

// WriteRankCSV writes a fresh ranking snapshot, header first.
func WriteRankCSV(path string, results []domain.RankResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(RankCSVHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write(rankRow(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// AppendRankHistory appends results to an accumulating history file,
// writing the header only when the file is being created.
func AppendRankHistory(path string, results []domain.RankResult) error {
	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(RankCSVHeader); err != nil {
			return err
		}
	}
	for _, r := range results {
		if err := w.Write(rankRow(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func rankRow(r domain.RankResult) []string {
	position := ""
	if r.Position > 0 {
		position = strconv.Itoa(r.Position)
	}
	return []string{
		r.Keyword,
		r.Domain,
		position,
		r.RankingURL,
		r.PageTitle,
		strconv.FormatBool(r.FoundInTop100),
		strconv.Itoa(r.TotalResults),
		r.CheckDate,
		r.CheckTime,
		r.Timestamp.Format(timestampLayout),
	}
}

// SERPSummaryCSVHeader is the column list of the flat per-keyword
// feature summary.
var SERPSummaryCSVHeader = []string{
	"keyword", "check_date", "featured_snippet", "people_also_ask",
	"paa_count", "knowledge_panel", "local_pack", "video_results",
	"image_pack", "site_links", "top_stories", "organic_count",
}

// WriteSERPSummaryCSV flattens feature presence per keyword into CSV.
func WriteSERPSummaryCSV(path string, results []domain.SERPAnalysis) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(SERPSummaryCSVHeader); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Keyword,
			r.CheckDate,
			strconv.FormatBool(r.FeaturedSnippet.Present),
			strconv.FormatBool(r.PeopleAlsoAsk.Present),
			strconv.Itoa(r.PeopleAlsoAsk.Count),
			strconv.FormatBool(r.KnowledgePanel.Present),
			strconv.FormatBool(r.LocalPack.Present),
			strconv.FormatBool(r.VideoResults.Present),
			strconv.FormatBool(r.ImagePack.Present),
			strconv.FormatBool(r.SiteLinks.Present),
			strconv.FormatBool(r.TopStories.Present),
			strconv.Itoa(r.OrganicResults.Count),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
