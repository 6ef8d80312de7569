package casefile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// begin claims the case for one mutation. The claim is a store lease, so
// it holds across every process sharing the database, and it is renewed
// until release is called.
func (s *implService) begin(ctx context.Context, caseID string) (func(), error) {
	if err := validID(caseID); err != nil {
		return nil, err
	}

	name := "case:" + caseID
	owner := uuid.NewString()
	ok, err := s.repo.AcquireLease(ctx, name, owner, s.leaseTTL)
	if err != nil {
		return nil, fmt.Errorf("claim case: %w", err)
	}
	if !ok {
		return nil, ErrBusy
	}

	renewCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.renew(renewCtx, name, owner)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			stop()
			<-done
			if err := s.repo.ReleaseLease(context.WithoutCancel(ctx), name, owner); err != nil {
				s.logger.Warn(ctx, "[%s] Failed to release case: %v", caseID, err)
			}
		})
	}, nil
}

func (s *implService) renew(ctx context.Context, name, owner string) {
	ticker := time.NewTicker(max(s.leaseTTL/3, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok, err := s.repo.AcquireLease(ctx, name, owner, s.leaseTTL)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				s.logger.Warn(ctx, "Failed to renew %s: %v", name, err)
				continue
			}
			if !ok {
				s.logger.Warn(ctx, "Lost %s to another process", name)
				return
			}
		}
	}
}
