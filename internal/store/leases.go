package store

import (
	"context"
	"fmt"
	"time"
)

// AcquireLease claims name for owner until ttl from now.
func (s *SQLiteStore) AcquireLease(ctx context.Context, name, owner string, ttl time.Duration) (bool, error) {
	now := time.Now()
	query := `
	INSERT INTO leases (name, owner, expires_at) VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET owner = excluded.owner, expires_at = excluded.expires_at
	WHERE leases.owner = excluded.owner OR leases.expires_at <= ?`

	result, err := s.db.ExecContext(ctx, query, name, owner, toMillis(now.Add(ttl)), toMillis(now))
	if err != nil {
		return false, fmt.Errorf("acquire lease %s: %w", name, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows == 1, nil
}

// ReleaseLease drops the lease if owner still holds it.
func (s *SQLiteStore) ReleaseLease(ctx context.Context, name, owner string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM leases WHERE name = ? AND owner = ?`, name, owner); err != nil {
		return fmt.Errorf("release lease %s: %w", name, err)
	}
	return nil
}
