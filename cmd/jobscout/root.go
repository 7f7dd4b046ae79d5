package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobscout/jobscout/internal/adapter"
	"github.com/jobscout/jobscout/internal/aggregate"
	"github.com/jobscout/jobscout/internal/cache"
	"github.com/jobscout/jobscout/internal/config"
	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/retry"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Job board scanner",
	Long:  "JobScout fans a keyword search out to several job boards, filters the merged results, and exports the matches.",
	// Default to `scan` so that `jobscout -k ... -l ...` works without a subcommand.
	RunE: runScan,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSCOUT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSCOUT_CONFIG env var > "./config.yaml".
// When none of those name an existing file, built-in defaults are used.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBSCOUT_CONFIG"); env != "" {
			path = env
		} else if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		} else {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// buildAggregator wires the enabled source adapters, each wrapped with
// retries, into an aggregator.
func buildAggregator(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) *aggregate.Aggregator {
	withRetry := func(f model.SourceFetcher) model.SourceFetcher {
		return retry.NewFetcher(f, 2, 5*time.Second, logger)
	}

	var airtable, remotive, adzuna, remoteOK, arbeitnow model.SourceFetcher
	if cfg.Sources.Airtable.Enabled {
		airtable = withRetry(adapter.NewAirtableAdapter(cfg.Sources.Airtable.EmbedURL, cfg.Sources.Airtable.BaseHeaders, cfg.Aliases.Cities, httpClient, logger))
	}
	if cfg.Sources.Remotive.Enabled {
		remotive = withRetry(adapter.NewRemotiveAdapter(cfg.Sources.Remotive.URL, httpClient))
	}
	if cfg.Sources.Adzuna.Enabled {
		if cfg.Sources.Adzuna.AppID == "" || cfg.Sources.Adzuna.AppKey == "" {
			logger.Warn("adzuna credentials missing, source disabled")
		} else {
			adzuna = withRetry(adapter.NewAdzunaAdapter(cfg.Sources.Adzuna.URL, cfg.Sources.Adzuna.AppID, cfg.Sources.Adzuna.AppKey, cfg.Aliases.Countries, httpClient, logger))
		}
	}
	if cfg.Sources.RemoteOK.Enabled {
		remoteOK = withRetry(adapter.NewRemoteOKAdapter(cfg.Sources.RemoteOK.URL, httpClient, logger))
	}
	if cfg.Sources.Arbeitnow.Enabled {
		arbeitnow = withRetry(adapter.NewArbeitnowAdapter(cfg.Sources.Arbeitnow.URL, httpClient, logger))
	}

	return aggregate.New(airtable, remotive, adzuna, remoteOK, arbeitnow, cfg.Aliases.Cities, logger)
}

func buildCache(cfg *config.Config, logger *slog.Logger) *cache.Cache {
	return cache.New(cfg.Cache.Dir, cfg.Cache.TTL, logger)
}
