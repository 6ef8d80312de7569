package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/legal-os/internal/casefile"
	"github.com/nguyentantai21042004/legal-os/internal/domain"
	"github.com/nguyentantai21042004/legal-os/internal/logger"
	"github.com/nguyentantai21042004/legal-os/pkg/poll"
)

// rejectedDir collects inbox files the case would not accept.
const rejectedDir = "rejected"

// EvidenceOptions configure NewEvidenceHandler.
type EvidenceOptions struct {
	CaseID     string
	ArchiveDir string
	// RetryInterval and RetryTimeout bound the wait for a busy case.
	RetryInterval time.Duration
	RetryTimeout  time.Duration
}

// NewEvidenceHandler adds each inbox file to a case and moves it to the
// archive. Files the case rejects go to the archive's rejected folder.
func NewEvidenceHandler(svc casefile.Service, opts EvidenceOptions, log logger.Logger) EventHandler {
	return func(ctx context.Context, path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		upload := domain.Upload{Filename: filepath.Base(path), Data: data}

		var c *domain.Case
		var addErr error
		err = poll.Until(ctx, "case "+opts.CaseID, opts.RetryInterval, opts.RetryTimeout, func(ctx context.Context) (bool, error) {
			c, addErr = svc.AddEvidence(ctx, opts.CaseID, upload, "")
			if errors.Is(addErr, casefile.ErrBusy) {
				log.Debug(ctx, "[%s] Case busy, retrying %s", opts.CaseID, upload.Filename)
				return false, nil
			}
			return true, nil
		})
		if err != nil {
			return err
		}

		if c == nil {
			if moveErr := move(path, filepath.Join(opts.ArchiveDir, rejectedDir)); moveErr != nil {
				log.Warn(ctx, "Failed to move rejected %s: %v", upload.Filename, moveErr)
			}
			return fmt.Errorf("rejected: %w", addErr)
		}

		if err := move(path, opts.ArchiveDir); err != nil {
			return fmt.Errorf("archive %s: %w", upload.Filename, err)
		}

		if addErr != nil {
			log.Warn(ctx, "[%s] %s stored, brief not updated: %v", opts.CaseID, upload.Filename, addErr)
			return nil
		}

		log.Info(ctx, "[%s] %s added, brief now covers %d items", opts.CaseID, upload.Filename, c.BriefItems)
		return nil
	}
}

// move renames path into dir, suffixing the name if it is taken.
func move(path, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	name := filepath.Base(path)
	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(name)
		dest = filepath.Join(dir, fmt.Sprintf("%s_%d%s", name[:len(name)-len(ext)], time.Now().UnixNano(), ext))
	}
	return os.Rename(path, dest)
}
