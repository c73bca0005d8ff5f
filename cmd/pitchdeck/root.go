package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"pitchdeck-scraper/internal/config"
	"pitchdeck-scraper/internal/scrape"
	"pitchdeck-scraper/internal/scrape/types"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	logLevel string

	// set by loadConfig before any command runs
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pitchdeck [flags] <companies|pitches|all>",
	Short: "Scrapes company and pitch cards from pitchdeck.business into JSON files.",
	Long: `Scrapes company and pitch cards from pitchdeck.business.

  companies  writes companies.json (name, description, logoUrl)
  pitches    writes pitches.json (name, hashtags)
  all        runs both pipelines concurrently`,
	ValidArgs:         []string{string(scrape.OpCompanies), string(scrape.OpPitches), string(scrape.OpAll)},
	Args:              operationArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runScrape,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yml", "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &types.ConfigurationError{Field: "flags", Reason: err.Error()}
	})
}

func operationArgs(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &types.ConfigurationError{
			Field:  "operation",
			Reason: fmt.Sprintf("expected exactly one operation (companies, pitches, all), got %d", len(args)),
		}
	}
	return nil
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	// .env beside the working directory may carry PITCHDECK_* overrides
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &types.ConfigurationError{Field: ".env", Reason: err.Error()}
	}

	resolved, vr, err := config.Resolve(cfgPath)
	if err != nil {
		return &types.ConfigurationError{Field: cfgPath, Reason: err.Error()}
	}
	if logLevel != "" {
		resolved.Log.Level = strings.ToLower(logLevel)
		resolved, vr = config.NormalizeAndValidate(resolved)
	}

	slog.SetDefault(newLogger(os.Stderr, resolved.Log.Level))

	for _, w := range vr.Warnings {
		slog.Warn("[config] " + w)
	}
	if err := vr.Err(); err != nil {
		return err
	}

	cfg = resolved
	slog.Debug("[config] loaded", "path", cfgPath, "base_url", cfg.HTTP.BaseURL)
	return nil
}
