package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	cli "gopkg.in/urfave/cli.v1"

	"seotools/internal/config"
	"seotools/internal/crawler"
	"seotools/internal/domain"
	"seotools/internal/export"
)

func crawlCommand() cli.Command {
	return cli.Command{
		Name:  "crawl",
		Usage: "crawl a site and report broken links, redirect chains and errors",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "url, u", Usage: "seed URL to crawl"},
			cli.IntFlag{Name: "max-pages, n", Usage: "page ceiling (defaults to CRAWL_MAX_PAGES)"},
			cli.StringFlag{Name: "out, o", Usage: "CSV report path"},
		},
		Action: runCrawl,
	}
}

func runCrawl(c *cli.Context) error {
	seed := c.String("url")
	if seed == "" {
		return cli.NewExitError("crawl: --url is required", 1)
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

	client, err := newCrawlFetcher(cfg)
	if err != nil {
		return err
	}

	maxPages := c.Int("max-pages")
	if maxPages <= 0 {
		maxPages = cfg.CrawlMaxPages
	}

	cr, err := crawler.New(seed, maxPages, client, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	results, err := cr.Run(ctx)
	if err != nil {
		logger.Warn("crawl interrupted", zap.Error(err))
	}

	printCrawlSummary(crawler.Summarize(results))

	out := c.String("out")
	if out == "" {
		out = fmt.Sprintf("link_report_%s.csv", time.Now().Format("20060102_150405"))
	}
	if err := export.WriteCrawlCSV(out, results); err != nil {
		return err
	}
	fmt.Printf("\nReport exported to: %s\n", out)
	return nil
}

func printCrawlSummary(s domain.CrawlSummary) {
	line := "=================================================="
	fmt.Println()
	fmt.Println(line)
	fmt.Println("CRAWL SUMMARY")
	fmt.Println(line)
	fmt.Printf("Total URLs checked: %d\n", s.Total)
	fmt.Printf("OK (200):           %d\n", s.OK)
	fmt.Printf("Redirects:          %d\n", s.Redirects)
	fmt.Printf("Broken links:       %d\n", s.Broken)
	fmt.Printf("Server errors:      %d\n", s.ServerErrors)
	fmt.Printf("Errors:             %d\n", s.Errors)
	fmt.Println(line)
}
