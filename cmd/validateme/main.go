// Package main is the entry point for the validateme CLI.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/validateme/outreach/internal/config"
	"github.com/validateme/outreach/internal/drafts"
	"github.com/validateme/outreach/internal/llm"
	"github.com/validateme/outreach/internal/search"
	"github.com/validateme/outreach/internal/sources"
)

// cfg is loaded once in the root command's pre-run hook
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "validateme",
	Short: "Find Reddit posts about a problem and draft outreach messages",
	Long: `validateme searches a fixed set of subreddits for posts matching a topic,
ranks them by score, and drafts short outreach messages for a chosen post
using a generative model.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load environment variables from .env file if it exists
		if err := godotenv.Load(); err != nil {
			logrus.Debug("No .env file found, using environment variables")
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		logrus.SetLevel(logrus.InfoLevel)
		if cfg.Debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
		if jsonLogs, _ := cmd.Flags().GetBool("json-logs"); jsonLogs {
			logrus.SetFormatter(&logrus.JSONFormatter{})
		}
		logrus.SetOutput(os.Stderr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json-logs", false, "emit logs as JSON")
}

func newSource() sources.Source {
	if cfg.UseMockData {
		logrus.Info("Using mock data (USE_MOCK_DATA=true)")
		return sources.NewMockSource()
	}
	if cfg.OAuthEnabled() {
		logrus.Info("Using Reddit OAuth API")
	} else {
		logrus.Info("Using Reddit JSON API (no authentication required)")
	}
	return sources.NewRedditSource(cfg)
}

func newSearchService() *search.Service {
	return search.NewService(cfg, newSource())
}

func newGenerator() *drafts.Generator {
	return drafts.NewGenerator(llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL), cfg.OpenAIModel)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
