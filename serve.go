package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aguxez/bmrcalc/api"
	"github.com/aguxez/bmrcalc/calculator"
	"github.com/aguxez/bmrcalc/config"
	"github.com/aguxez/bmrcalc/filewatch"
	"github.com/aguxez/bmrcalc/logging"
	"github.com/aguxez/bmrcalc/models"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := logging.Setup(cfg.Logging); err != nil {
		return err
	}

	calc := calculator.New()
	sm := &models.StateManager{}

	// Optional CSV inbox
	if cfg.Batch.Enabled() {
		fw, err := filewatch.NewFileWatcher(calc, cfg.Batch.InboxDir, cfg.Batch.OutboxDir, sm)
		if err != nil {
			return fmt.Errorf("creating file watcher: %w", err)
		}
		if err := fw.ProcessExisting(); err != nil {
			logrus.WithError(err).Warn("processing existing inbox files")
		}
		go fw.Watch(ctx)
		logrus.WithField("inbox", cfg.Batch.InboxDir).Info("batch inbox enabled")
	}

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	handler := api.NewHandler(calc, sm, cfg.App.Version)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, metricsPath),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Infof("%s starting", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	logrus.Info("server stopped")
	return nil
}
