// Package cmd defines and implements the CLI commands for the hansard
// executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/app"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/config"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/hansard"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/logging"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/storage"
)

var (
	cfgFile       string
	verbose       bool
	metricsListen string
)

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App defines the application interface that commands will use. This
// allows us to inject a mock app during tests.
type App interface {
	Close()
	GetConfig() config.Config
	GetLogger() *zap.Logger
	GetTOC() *hansard.TOCClient
	GetFragments() *hansard.FragmentClient
	GetWriter() *storage.Writer
	GetDumper() *storage.HTMLDumper
}

// newApp is the application factory. It's a variable so we can replace it
// with a mock factory in our tests.
var newApp = func(cfg config.Config, logger *zap.Logger) (App, error) {
	return app.New(cfg, logger)
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hansard",
		Short: "A scraper for the NSW Parliament Hansard API.",
		Long: `hansard fetches sitting-day transcripts from the NSW Parliament
Hansard API. It resolves a day's table of contents, fetches every topic's
transcript fragment concurrently, normalizes the fragment HTML into
structured speeches and paragraphs, and writes the augmented tree as a
JSON artifact.`,
		SilenceUsage: true,

		// Runs after flags are parsed and before the subcommand's RunE;
		// this is where the application is built and injected.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if metricsListen != "" {
				cfg.Metrics.Enabled = true
				cfg.Metrics.Listen = metricsListen
			}

			logger, err := logging.New(cfg.Logging.Development, verbose)
			if err != nil {
				return err
			}

			appInstance, err := newApp(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)
			return nil
		},

		// Ensures services are shut down gracefully.
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ./hansard.yaml and $HOME/.config/hansard)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&metricsListen, "metrics-listen", "", "expose Prometheus metrics on this address")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newTocCmd())
	cmd.AddCommand(newTopicCmd())

	return cmd
}

// resolveApp retrieves the App injected by the root command's hooks.
func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
