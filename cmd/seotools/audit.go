package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"seotools/internal/audit"
	"seotools/internal/config"
	"seotools/internal/domain"
	"seotools/internal/export"
)

func auditCommand() cli.Command {
	return cli.Command{
		Name:  "audit",
		Usage: "run an on-page SEO audit against a single URL",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "url, u", Usage: "page URL to audit"},
			cli.StringFlag{Name: "json, j", Usage: "JSON report path"},
		},
		Action: runAudit,
	}
}

func runAudit(c *cli.Context) error {
	pageURL := c.String("url")
	if pageURL == "" {
		return cli.NewExitError("audit: --url is required", 1)
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
	auditor := audit.NewAuditor(client, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, err := auditor.Run(ctx, pageURL)
	if err != nil {
		return err
	}

	printAuditReport(report)

	jsonOut := c.String("json")
	if jsonOut == "" {
		jsonOut = fmt.Sprintf("audit_%s.json", time.Now().Format("20060102_150405"))
	}
	if err := export.WriteJSON(jsonOut, report); err != nil {
		return err
	}
	fmt.Printf("Detailed report exported to: %s\n", jsonOut)
	return nil
}

func printAuditReport(r *domain.AuditReport) {
	line := "============================================================"
	fmt.Println()
	fmt.Println(line)
	fmt.Println("SEO AUDIT REPORT")
	fmt.Println(line)
	fmt.Printf("URL: %s\n", r.URL)
	fmt.Printf("Audit date: %s\n", r.AuditDate)
	fmt.Printf("Status code: %d, load time: %.2fs, page size: %.2f KB\n\n",
		r.StatusCode, r.LoadTime, r.PageSizeKB)

	fmt.Printf("OVERALL SEO SCORE: %.1f/100\n", r.Scores.Overall)
	fmt.Printf("  Passed:          %d\n", r.Scores.Passed)
	fmt.Printf("  Warnings:        %d\n", r.Scores.Warnings)
	fmt.Printf("  Critical issues: %d\n", r.Scores.CriticalIssues)

	if len(r.Issues) > 0 {
		fmt.Println("\nCRITICAL ISSUES")
		for _, f := range r.Issues {
			fmt.Printf("  [x] %s: %s\n", f.Element, f.Issue)
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Println("\nWARNINGS")
		for i, f := range r.Warnings {
			if i == 10 {
				fmt.Printf("  ... and %d more\n", len(r.Warnings)-10)
				break
			}
			fmt.Printf("  [!] %s: %s\n", f.Element, f.Issue)
		}
	}
	if len(r.Passed) > 0 {
		fmt.Println("\nPASSED CHECKS")
		for i, f := range r.Passed {
			if i == 10 {
				fmt.Printf("  ... and %d more\n", len(r.Passed)-10)
				break
			}
			fmt.Printf("  [ok] %s: %s\n", f.Element, f.Status)
		}
	}
	fmt.Println(line)
}
