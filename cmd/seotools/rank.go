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
	"seotools/internal/export"
	"seotools/internal/identity"
	"seotools/internal/rank"
	"seotools/internal/serp"
)

func rankCommand() cli.Command {
	return cli.Command{
		Name:  "rank",
		Usage: "track keyword rankings for a domain in organic search results",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "domain, d", Usage: "domain to track"},
			cli.StringFlag{Name: "keywords, k", Usage: "comma-separated keyword list"},
			cli.StringFlag{Name: "file, f", Usage: "keyword file, one per line"},
			cli.StringFlag{Name: "out, o", Usage: "CSV snapshot path"},
			cli.StringFlag{Name: "json, j", Usage: "JSON snapshot path"},
			cli.StringFlag{Name: "history", Usage: "append-only history CSV", Value: "ranking_history.csv"},
		},
		Action: runRank,
	}
}

func runRank(c *cli.Context) error {
	domainName := c.String("domain")
	if domainName == "" {
		return cli.NewExitError("rank: --domain is required", 1)
	}
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
	tracker := rank.NewTracker(domainName, serp.NewClient(client, rotator, cfg.Language), logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	results, err := tracker.TrackAll(ctx, keywords)
	if err != nil {
		logger.Warn("tracking interrupted", zap.Error(err))
	}

	printRankSummary(domainName, rank.Summarize(results))

	stamp := time.Now().Format("20060102_150405")
	out := c.String("out")
	if out == "" {
		out = fmt.Sprintf("rankings_%s.csv", stamp)
	}
	if err := export.WriteRankCSV(out, results); err != nil {
		return err
	}
	fmt.Printf("Results exported to: %s\n", out)

	if jsonOut := c.String("json"); jsonOut != "" {
		if err := export.WriteJSON(jsonOut, results); err != nil {
			return err
		}
		fmt.Printf("JSON export saved to: %s\n", jsonOut)
	}

	if history := c.String("history"); history != "" {
		if err := export.AppendRankHistory(history, results); err != nil {
			return err
		}
		fmt.Printf("Results appended to history: %s\n", history)
	}
	return nil
}

func printRankSummary(domainName string, s rank.Summary) {
	line := "============================================================"
	fmt.Println()
	fmt.Println(line)
	fmt.Printf("RANKING SUMMARY FOR %s\n", domainName)
	fmt.Println(line)
	fmt.Printf("Total keywords tracked: %d\n", s.Total)
	fmt.Println("\nPosition breakdown:")
	fmt.Printf("  Top 10:          %d keywords\n", s.Top10)
	fmt.Printf("  Position 11-20:  %d keywords\n", s.Top20)
	fmt.Printf("  Position 21-50:  %d keywords\n", s.Top50)
	fmt.Printf("  Position 51-100: %d keywords\n", s.Top100)
	fmt.Printf("  Not in Top 100:  %d keywords\n", s.NotRanked)

	if len(s.Best) > 0 {
		fmt.Println("\nTop performing keywords:")
		for _, r := range s.Best {
			fmt.Printf("  #%d: %s\n", r.Position, r.Keyword)
		}
	}
	fmt.Println(line)
}
