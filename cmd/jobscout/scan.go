package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobscout/jobscout/internal/export"
	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/scanner"
	"github.com/jobscout/jobscout/internal/store"
)

// Seen links older than this are pruned each run so the store does not
// grow without bound.
const seenRetention = 90 * 24 * time.Hour

var (
	scanKeywords  []string
	scanSecondary []string
	scanLocations []string
	scanLimit     int
	scanSortBy    string
	scanOutput    string
	scanNewOnly   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the job boards once and export matches to CSV",
	RunE:  runScan,
}

func init() {
	registerScanFlags(scanCmd)
	registerScanFlags(rootCmd)
	rootCmd.AddCommand(scanCmd)
}

func registerScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&scanKeywords, "keywords", "k", nil, "keyword phrases to search for (required)")
	cmd.Flags().StringSliceVarP(&scanSecondary, "secondary", "s", nil, "secondary keyword phrases (default: same as --keywords)")
	cmd.Flags().StringSliceVarP(&scanLocations, "locations", "l", nil, "locations to search in (required)")
	cmd.Flags().IntVar(&scanLimit, "limit", 0, "max results requested per source call")
	cmd.Flags().StringVar(&scanSortBy, "sort-by", "", `sort results by "location", "keyword" or "published at"`)
	cmd.Flags().StringVarP(&scanOutput, "output", "o", "", "CSV output path")
	cmd.Flags().BoolVar(&scanNewOnly, "new-only", false, "only export postings not seen on a previous scan")
}

func runScan(cmd *cobra.Command, args []string) error {
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
	if scanOutput == "" {
		scanOutput = cfg.Scan.Output
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

	var postingStore model.PostingStore
	if scanNewOnly {
		sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open seen store: %w", err)
		}
		defer sqlStore.Close()
		if err := sqlStore.Cleanup(seenRetention); err != nil {
			logger.Warn("seen store cleanup failed", "error", err)
		}
		if empty, err := sqlStore.IsEmpty(); err == nil && empty {
			logger.Info("seen store is empty, every match will be reported as new")
		}
		postingStore = sqlStore
	}

	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}
	agg := buildAggregator(cfg, httpClient, logger)
	s := scanner.New(agg, buildCache(cfg, logger), cfg.Aliases.Countries, postingStore, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.HTTP.RunDeadline)
	defer cancel()

	res, err := s.Scan(ctx, q, scanner.Options{SortBy: scanSortBy, NewOnly: scanNewOnly})
	if err != nil {
		return err
	}
	for _, diag := range res.Diagnostics {
		logger.Warn("source error", "error", diag)
	}

	if err := export.WriteCSV(scanOutput, res.Postings); err != nil {
		var exportErr *export.ExportError
		if errors.As(err, &exportErr) && exportErr.Permission {
			return fmt.Errorf("cannot write %s: permission denied, choose another path with --output", exportErr.Path)
		}
		return err
	}

	fmt.Fprintf(os.Stdout, "wrote %d postings to %s\n", len(res.Postings), scanOutput)
	return nil
}
