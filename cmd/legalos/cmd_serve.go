package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/legal-os/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	handler := api.NewHandler(api.Deps{
		Cases:         a.cases,
		Simulations:   a.sims,
		Reviewer:      a.reviewer,
		Exporter:      a.exporter,
		Repo:          a.repo,
		Logger:        a.log,
		MaxUpload:     a.cfg.Limits.MaxUploadMB << 20,
		AllowOrigins:  a.cfg.Server.AllowOrigins,
		KeyConfigured: a.cfg.HasAPIKey(),
	})

	// model calls run inside the request, so there is no write timeout
	srv := &http.Server{
		Addr:        ":" + a.cfg.Server.Port,
		Handler:     handler.Router(),
		ReadTimeout: a.cfg.Server.ReadTimeout,
		IdleTimeout: a.cfg.Server.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		a.log.Info(ctx, "Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info(context.Background(), "Shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	}

	a.log.Info(context.Background(), "Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.log.Info(shutdownCtx, "Server stopped")
	return nil
}
