package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	cli "gopkg.in/urfave/cli.v1"

	"seotools/internal/config"
	"seotools/internal/fetcher"
)

func main() {
	app := cli.NewApp()
	app.Name = "seotools"
	app.Usage = "SEO toolkit: broken-link crawler, keyword rank tracker, SERP feature scraper, site auditor"
	app.Version = "1.0.0"
	app.Commands = []cli.Command{
		crawlCommand(),
		rankCommand(),
		serpCommand(),
		auditCommand(),
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the structured logger. Reports go to stdout via
// fmt; the logger carries progress and failures.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// newCrawlFetcher builds the fetch client used by the crawler and the
// auditor: default user agent, polite crawl delay.
func newCrawlFetcher(cfg *config.Config) (*fetcher.Client, error) {
	return fetcher.New(fetcher.Options{
		UserAgent:    cfg.UserAgent,
		Timeout:      cfg.Timeout(),
		MaxBodyBytes: int64(cfg.MaxBodyKB) * 1024,
		Delay:        cfg.CrawlDelay(),
	})
}

// newSearchFetcher builds the fetch client used for search requests:
// longer delay, optional proxy.
func newSearchFetcher(cfg *config.Config, proxyURL string) (*fetcher.Client, error) {
	return fetcher.New(fetcher.Options{
		Timeout:      cfg.Timeout(),
		MaxBodyBytes: int64(cfg.MaxBodyKB) * 1024,
		Delay:        cfg.SearchDelayDuration(),
		ProxyURL:     proxyURL,
	})
}

// resolveKeywords reads keywords from --keywords or --file; one of the
// two is required.
func resolveKeywords(c *cli.Context) ([]string, error) {
	if file := c.String("file"); file != "" {
		return config.LoadKeywords(file)
	}
	if inline := c.String("keywords"); inline != "" {
		return config.ParseKeywords(inline)
	}
	return nil, cli.NewExitError("either --keywords or --file is required", 1)
}
