package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/legal-os/internal/store"
	"github.com/nguyentantai21042004/legal-os/internal/watcher"
)

const watchSettle = 500 * time.Millisecond

var watchFlags struct {
	caseID string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Add files dropped into the inbox to a case",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchFlags.caseID, "case", "", "Case ID to add evidence to (required)")
	_ = watchCmd.MarkFlagRequired("case")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.cases.Get(ctx, watchFlags.caseID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("case %s: %w", watchFlags.caseID, err)
		}
		a.log.Info(ctx, "Case %s does not exist yet, it is created with the first file", watchFlags.caseID)
	}

	handler := watcher.NewEvidenceHandler(a.cases, watcher.EvidenceOptions{
		CaseID:        watchFlags.caseID,
		ArchiveDir:    a.cfg.Paths.Archived,
		RetryInterval: a.cfg.Watch.RetryInterval,
		RetryTimeout:  a.cfg.Watch.RetryTimeout,
	}, a.log)

	w, err := watcher.New(a.cfg.Paths.Inbox, handler, a.log, watchSettle)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	a.log.Info(ctx, "Drop recordings or documents into %s to add them to case %s", a.cfg.Paths.Inbox, watchFlags.caseID)
	a.log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher: %w", err)
	}
	return nil
}
