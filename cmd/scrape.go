package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/config"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/export"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/hansard"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/id/run"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/normalize"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/pipeline"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/progress"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/storage"
)

// newScrapeCmd creates and configures the 'scrape' subcommand, the main
// entry point for fetching whole sitting days.
func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrapes sitting days and writes augmented JSON artifacts",
		Long: `Fetches the table of contents for each given sitting-day URL, fetches
every topic's transcript fragment concurrently, normalizes the fragments,
and writes one JSON artifact per day. Days whose table of contents cannot
be fetched are skipped with a warning; individual topic failures never
fail the day.`,

		RunE: runScrapeCommand,
	}

	cmd.Flags().StringArray("url", nil, "portal URL of a sitting day (repeatable)")
	_ = cmd.MarkFlagRequired("url")
	cmd.Flags().Int("workers", 0, "concurrent fragment fetches (default from config)")
	cmd.Flags().String("engine", "", "normalization engine: xpath, goquery or dom (default from config)")
	cmd.Flags().String("output-dir", "", "artifact directory (default from config)")
	cmd.Flags().StringSlice("export", nil, "also render each day as these formats: markdown, pdf")
	cmd.Flags().Bool("no-progress", false, "log batch progress instead of drawing a progress bar")
	cmd.Flags().Bool("dump-html", false, "also write each topic's raw fragment HTML")

	return cmd
}

func runScrapeCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	cfg := appInstance.GetConfig()
	flags := cmd.Flags()

	runID, err := run.New().NewID()
	if err != nil {
		return fmt.Errorf("generate run id: %w", err)
	}
	logger := appInstance.GetLogger().With(zap.String("run_id", runID))

	urls, err := flags.GetStringArray("url")
	if err != nil {
		return err
	}
	pdfIDs := collectPdfIDs(urls, logger)
	if len(pdfIDs) == 0 {
		return errors.New("no usable sitting-day urls")
	}

	opts, err := resolveScrapeOptions(flags, cfg)
	if err != nil {
		return err
	}

	writer, dumper := resolveStorage(appInstance, flags, logger)

	tracker, err := resolveTracker(flags, cfg, logger)
	if err != nil {
		return err
	}

	exportFormats := cfg.Export.Formats
	if flags.Changed("export") {
		exportFormats, err = flags.GetStringSlice("export")
		if err != nil {
			return err
		}
	}
	dumpHTML := cfg.Scrape.DumpHTML
	if flags.Changed("dump-html") {
		dumpHTML, err = flags.GetBool("dump-html")
		if err != nil {
			return err
		}
	}

	orchestrator := pipeline.New(appInstance.GetFragments(), tracker, logger)

	for _, pdfID := range pdfIDs {
		if err := cmd.Context().Err(); err != nil {
			return err
		}

		root, err := appInstance.GetTOC().Fetch(cmd.Context(), pdfID)
		if err != nil {
			logger.Warn("failed to fetch table of contents, skipping day",
				zap.String("pdfid", pdfID),
				zap.Error(err))
			continue
		}

		path, stats, err := orchestrator.Run(cmd.Context(), root, writer, opts)
		if err != nil {
			return fmt.Errorf("scrape %s: %w", pdfID, err)
		}
		logger.Info("sitting day scraped",
			zap.String("pdfid", pdfID),
			zap.String("path", path),
			zap.Int("topics", stats.Total),
			zap.Int("fetched", stats.Fetched),
			zap.Int("skipped", stats.Skipped))

		if dumpHTML {
			dumpFragments(dumper, root, logger)
		}
		for _, format := range exportFormats {
			if err := writeExport(writer, root, format, logger); err != nil {
				return err
			}
		}
	}

	return nil
}

// collectPdfIDs extracts the pdfid of each URL, warning about and skipping
// unusable ones. Duplicates keep their first position.
func collectPdfIDs(urls []string, logger *zap.Logger) []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, rawURL := range urls {
		pdfID, err := hansard.ExtractPdfID(rawURL)
		if err != nil {
			logger.Warn("skipping url", zap.String("url", rawURL), zap.Error(err))
			continue
		}
		if _, ok := seen[pdfID]; ok {
			continue
		}
		seen[pdfID] = struct{}{}
		ids = append(ids, pdfID)
	}
	return ids
}

func resolveScrapeOptions(flags *pflag.FlagSet, cfg config.Config) (pipeline.Options, error) {
	workers := cfg.Scrape.Workers
	if flags.Changed("workers") {
		value, err := flags.GetInt("workers")
		if err != nil {
			return pipeline.Options{}, err
		}
		workers = max(1, value)
	}

	engineName := cfg.Scrape.Engine
	if flags.Changed("engine") {
		value, err := flags.GetString("engine")
		if err != nil {
			return pipeline.Options{}, err
		}
		engineName = value
	}
	engine, err := normalize.ParseEngine(engineName)
	if err != nil {
		return pipeline.Options{}, err
	}

	return pipeline.Options{Workers: workers, Engine: engine}, nil
}

// resolveTracker picks the batch tracker: a terminal bar while
// scrape.progress holds, log lines otherwise. --no-progress overrides the
// config either way.
func resolveTracker(flags *pflag.FlagSet, cfg config.Config, logger *zap.Logger) (progress.Tracker, error) {
	show := cfg.Scrape.Progress
	if flags.Changed("no-progress") {
		noProgress, err := flags.GetBool("no-progress")
		if err != nil {
			return nil, err
		}
		show = !noProgress
	}
	if show {
		return progress.NewBar(), nil
	}
	return progress.NewLog(logger), nil
}

// resolveStorage returns the app's writers, or fresh ones when
// --output-dir points somewhere else.
func resolveStorage(appInstance App, flags *pflag.FlagSet, logger *zap.Logger) (*storage.Writer, *storage.HTMLDumper) {
	if !flags.Changed("output-dir") {
		return appInstance.GetWriter(), appInstance.GetDumper()
	}
	dir, err := flags.GetString("output-dir")
	if err != nil || dir == "" {
		return appInstance.GetWriter(), appInstance.GetDumper()
	}
	return storage.NewWriter(dir, logger), storage.NewHTMLDumper(filepath.Join(dir, "html"), logger)
}

func dumpFragments(dumper *storage.HTMLDumper, root *hansard.Root, logger *zap.Logger) {
	for _, topic := range root.Topics() {
		if topic.Data == nil {
			continue
		}
		if _, err := dumper.Dump(topic.DocID, topic.Data.RawHTML); err != nil {
			logger.Warn("failed to dump fragment html",
				zap.String("docid", topic.DocID),
				zap.Error(err))
		}
	}
}

func writeExport(writer *storage.Writer, root *hansard.Root, format string, logger *zap.Logger) error {
	data, ext, err := export.Render(root, format)
	if err != nil {
		return err
	}
	path, err := writer.WriteExport(root.PdfID+ext, data)
	if err != nil {
		return fmt.Errorf("write %s export for %s: %w", format, root.PdfID, err)
	}
	logger.Info("export written",
		zap.String("format", format),
		zap.String("path", path))
	return nil
}
