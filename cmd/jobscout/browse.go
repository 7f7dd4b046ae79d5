package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jobscout/jobscout/internal/browse"
	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/scanner"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Scan the job boards and browse matches interactively",
	RunE:  runBrowse,
}

func init() {
	registerScanFlags(browseCmd)
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	if scanLimit == 0 {
		scanLimit = cfg.Scan.Limit
	}
	if scanSortBy == "" {
		scanSortBy = cfg.Scan.SortBy
	}

	q := model.Query{
		Keywords:          scanKeywords,
		SecondaryKeywords: scanSecondary,
		Locations:         scanLocations,
		Limit:             scanLimit,
	}
	if err := scanner.Validate(q); err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}
	agg := buildAggregator(cfg, httpClient, logger)
	s := scanner.New(agg, buildCache(cfg, logger), cfg.Aliases.Countries, nil, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.HTTP.RunDeadline)
	defer cancel()

	res, err := s.Scan(ctx, q, scanner.Options{SortBy: scanSortBy})
	if err != nil {
		return err
	}
	for _, diag := range res.Diagnostics {
		logger.Warn("source error", "error", diag)
	}
	if len(res.Postings) == 0 {
		fmt.Println("no matching postings")
		return nil
	}

	return browse.Run(res.Postings)
}
