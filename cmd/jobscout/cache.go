package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the query-result cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached query results",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogger(debug)
		cfg, err := loadConfig(cfgPath)
		if err != nil {
			return err
		}
		if err := buildCache(cfg, logger).Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Println("cache cleared")
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry count and size on disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogger(debug)
		cfg, err := loadConfig(cfgPath)
		if err != nil {
			return err
		}
		count, size, err := buildCache(cfg, logger).Stats()
		if err != nil {
			return fmt.Errorf("read cache stats: %w", err)
		}
		fmt.Printf("%d entries, %d bytes in %s\n", count, size, cfg.Cache.Dir)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd, cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}
