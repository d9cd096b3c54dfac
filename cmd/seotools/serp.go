package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	cli "gopkg.in/urfave/cli.v1"

	"seotools/internal/config"
	"seotools/internal/domain"
	"seotools/internal/export"
	"seotools/internal/identity"
	"seotools/internal/serp"
)

func serpCommand() cli.Command {
	return cli.Command{
		Name:  "serp",
		Usage: "scan result pages for SERP features per keyword",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "keywords, k", Usage: "comma-separated keyword list"},
			cli.StringFlag{Name: "file, f", Usage: "keyword file, one per line"},
			cli.StringFlag{Name: "json, j", Usage: "detailed JSON output path"},
			cli.StringFlag{Name: "csv", Usage: "flat summary CSV path"},
		},
		Action: runSERP,
	}
}

func runSERP(c *cli.Context) error {
	keywords, err := resolveKeywords(c)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	rotator := identity.NewRotator(cfg.UserAgents(), cfg.Proxies())
	client, err := newSearchFetcher(cfg, rotator.Proxy())
	if err != nil {
		return err
	}
	scraper := serp.NewScraper(serp.NewClient(client, rotator, cfg.Language), logger, cfg.SearchResults)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	results, err := scraper.AnalyzeAll(ctx, keywords)
	if err != nil {
		logger.Warn("analysis interrupted", zap.Error(err))
	}

	for _, r := range results {
		printSERPAnalysis(r)
	}

	stamp := time.Now().Format("20060102_150405")
	jsonOut := c.String("json")
	if jsonOut == "" {
		jsonOut = fmt.Sprintf("serp_analysis_%s.json", stamp)
	}
	if err := export.WriteJSON(jsonOut, results); err != nil {
		return err
	}
	fmt.Printf("\nDetailed results exported to: %s\n", jsonOut)

	csvOut := c.String("csv")
	if csvOut == "" {
		csvOut = fmt.Sprintf("serp_features_summary_%s.csv", stamp)
	}
	if err := export.WriteSERPSummaryCSV(csvOut, results); err != nil {
		return err
	}
	fmt.Printf("Summary CSV exported to: %s\n", csvOut)
	return nil
}

func printSERPAnalysis(r domain.SERPAnalysis) {
	var present []string
	if r.FeaturedSnippet.Present {
		present = append(present, "Featured Snippet")
	}
	if r.PeopleAlsoAsk.Present {
		present = append(present, fmt.Sprintf("PAA (%d)", r.PeopleAlsoAsk.Count))
	}
	if r.KnowledgePanel.Present {
		present = append(present, "Knowledge Panel")
	}
	if r.LocalPack.Present {
		present = append(present, "Local Pack")
	}
	if r.VideoResults.Present {
		present = append(present, "Videos")
	}
	if r.ImagePack.Present {
		present = append(present, "Image Pack")
	}
	if r.SiteLinks.Present {
		present = append(present, "Sitelinks")
	}
	if r.TopStories.Present {
		present = append(present, "Top Stories")
	}

	features := "None detected"
	if len(present) > 0 {
		features = strings.Join(present, ", ")
	}
	fmt.Printf("%s\n  SERP features: %s\n  Organic results: %d\n",
		r.Keyword, features, r.OrganicResults.Count)
}
