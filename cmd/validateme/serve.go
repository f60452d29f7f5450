package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/validateme/outreach/internal/digest"
	"github.com/validateme/outreach/internal/notifications"
	"github.com/validateme/outreach/internal/scheduler"
	"github.com/validateme/outreach/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (and the digest scheduler when configured)",
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.Info("Starting ValidateMe")

		searchService := newSearchService()
		generator := newGenerator()

		if cfg.DigestSchedule != "" {
			digestService := digest.NewService(searchService, notifications.NewService(cfg), cfg.DigestKeywords)
			schedulerService := scheduler.NewService(cfg, digestService)
			if err := schedulerService.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
			defer schedulerService.Stop()
		}

		httpServer := &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Port),
			Handler:      server.NewRouter(searchService, generator),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logrus.Infof("HTTP server starting on port %s", cfg.Port)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		// Wait for interrupt signal to gracefully shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("HTTP server failed: %w", err)
		case <-quit:
		}

		logrus.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			logrus.Errorf("Server forced to shutdown: %v", err)
		}

		logrus.Info("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
