// Package app initializes and holds long-lived application services,
// acting as a dependency injection container.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/clock/system"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/config"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/hansard"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/metrics"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/storage"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/transport"
)

// App holds the shared, long-lived services of the scraper: the HTTP
// transport, the two API clients, the artifact writers and the optional
// metrics server. It is initialized once at startup and handed to the
// commands that need it.
type App struct {
	cfg           config.Config
	logger        *zap.Logger
	transport     transport.Client
	toc           *hansard.TOCClient
	fragments     *hansard.FragmentClient
	writer        *storage.Writer
	dumper        *storage.HTMLDumper
	metricsServer *http.Server
}

// GetConfig returns the loaded configuration.
func (a *App) GetConfig() config.Config {
	return a.cfg
}

// GetLogger returns the shared zap logger instance.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// GetTOC exposes the table of contents client.
func (a *App) GetTOC() *hansard.TOCClient {
	return a.toc
}

// GetFragments exposes the fragment client.
func (a *App) GetFragments() *hansard.FragmentClient {
	return a.fragments
}

// GetWriter exposes the JSON artifact writer.
func (a *App) GetWriter() *storage.Writer {
	return a.writer
}

// GetDumper exposes the raw fragment HTML dumper.
func (a *App) GetDumper() *storage.HTMLDumper {
	return a.dumper
}

// New creates and initializes an App from the loaded configuration. It is
// the central point for service initialization and fails fast when any
// service cannot be built.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	logger.Info("initializing application services",
		zap.String("provider", cfg.Transport.Provider),
		zap.String("base_url", cfg.API.BaseURL))

	client, err := newTransport(cfg, logger)
	if err != nil {
		return nil, err
	}

	metrics.Init()

	a := &App{
		cfg:       cfg,
		logger:    logger,
		transport: client,
		toc:       hansard.NewTOCClient(client, cfg.API.BaseURL, logger),
		fragments: hansard.NewFragmentClient(client, cfg.API.BaseURL, cfg.Fragment.RetryPolicy(), system.New(), logger),
		writer:    storage.NewWriter(cfg.Scrape.OutputDir, logger),
		dumper:    storage.NewHTMLDumper(filepath.Join(cfg.Scrape.OutputDir, "html"), logger),
	}

	if cfg.Metrics.Enabled {
		a.metricsServer = startMetricsServer(cfg.Metrics.Listen, logger)
	}

	logger.Debug("application services initialized")
	return a, nil
}

func newTransport(cfg config.Config, logger *zap.Logger) (transport.Client, error) {
	opts := cfg.Transport.TransportOptions()
	switch cfg.Transport.Provider {
	case "http":
		return transport.NewHTTPClient(opts, logger), nil
	case "colly":
		return transport.NewCollyClient(opts, logger), nil
	default:
		return nil, fmt.Errorf("unknown transport provider: %s", cfg.Transport.Provider)
	}
}

func startMetricsServer(listen string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("starting metrics server", zap.String("listen", listen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	return srv
}

// Close gracefully shuts down the services held by the App. It is called
// by a Cobra hook after the command finishes execution.
func (a *App) Close() {
	a.logger.Debug("shutting down application services")
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.logger.Warn("error shutting down metrics server", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
