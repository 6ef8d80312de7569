package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

// CreateCase inserts an empty case.
func (s *SQLiteStore) CreateCase(ctx context.Context, c *domain.Case) error {
	query := `
	INSERT INTO cases (id, brief, filename, context, brief_items, turn_count, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.Brief, c.Filename, c.Context, c.BriefItems, c.TurnCount,
		toMillis(c.CreatedAt), toMillis(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert case: %w", err)
	}
	return nil
}

// GetCase loads a case with its evidence in insertion order.
func (s *SQLiteStore) GetCase(ctx context.Context, id string) (*domain.Case, error) {
	query := `
		SELECT id, brief, filename, context, brief_items, turn_count, created_at, updated_at
		FROM cases WHERE id = ?`

	var c domain.Case
	var createdAt, updatedAt int64
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Brief, &c.Filename, &c.Context, &c.BriefItems, &c.TurnCount,
		&createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan case row: %w", err)
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)

	evidence, err := s.listEvidence(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Evidence = evidence

	return &c, nil
}

func (s *SQLiteStore) listEvidence(ctx context.Context, caseID string) ([]domain.EvidenceItem, error) {
	query := `
		SELECT id, case_id, seq, filename, kind, mime_type, text, path, size, created_at
		FROM evidence WHERE case_id = ? ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("query evidence: %w", err)
	}
	defer rows.Close()

	var items []domain.EvidenceItem
	for rows.Next() {
		var item domain.EvidenceItem
		var kind string
		var createdAt int64
		if err := rows.Scan(
			&item.ID, &item.CaseID, &item.Seq, &item.Filename, &kind, &item.MIMEType,
			&item.Text, &item.Path, &item.Size, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan evidence row: %w", err)
		}
		item.Kind = domain.Kind(kind)
		item.CreatedAt = fromMillis(createdAt)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evidence: %w", err)
	}
	return items, nil
}

// AddEvidence appends an item to its case and assigns Seq.
func (s *SQLiteStore) AddEvidence(ctx context.Context, item *domain.EvidenceItem) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var next int
		err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(seq), 0) + 1 FROM evidence WHERE case_id = ?`, item.CaseID,
		).Scan(&next)
		if err != nil {
			return fmt.Errorf("next evidence seq: %w", err)
		}

		query := `
		INSERT INTO evidence (id, case_id, seq, filename, kind, mime_type, text, path, size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, query,
			item.ID, item.CaseID, next, item.Filename, string(item.Kind), item.MIMEType,
			item.Text, item.Path, item.Size, toMillis(item.CreatedAt),
		); err != nil {
			return fmt.Errorf("insert evidence: %w", err)
		}

		item.Seq = next
		return nil
	})
}

// GetTranscripts returns cached audio transcripts keyed by evidence ID.
func (s *SQLiteStore) GetTranscripts(ctx context.Context, caseID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT evidence_id, text FROM transcripts WHERE case_id = ?`, caseID)
	if err != nil {
		return nil, fmt.Errorf("query transcripts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var id, text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, fmt.Errorf("scan transcript row: %w", err)
		}
		out[id] = text
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcripts: %w", err)
	}
	return out, nil
}

// SaveCase updates the case row and upserts transcripts in one transaction.
func (s *SQLiteStore) SaveCase(ctx context.Context, c *domain.Case, transcripts map[string]string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := updateCase(ctx, tx, c); err != nil {
			return err
		}

		query := `
		INSERT INTO transcripts (evidence_id, case_id, text, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(evidence_id) DO UPDATE SET text = excluded.text`
		for id, text := range transcripts {
			if _, err := tx.ExecContext(ctx, query, id, c.ID, text, toMillis(c.UpdatedAt)); err != nil {
				return fmt.Errorf("upsert transcript %s: %w", id, err)
			}
		}
		return nil
	})
}

// ResetCase deletes evidence and transcripts and stores the cleared case.
func (s *SQLiteStore) ResetCase(ctx context.Context, c *domain.Case) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM transcripts WHERE case_id = ?`, c.ID); err != nil {
			return fmt.Errorf("delete transcripts: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM evidence WHERE case_id = ?`, c.ID); err != nil {
			return fmt.Errorf("delete evidence: %w", err)
		}
		return updateCase(ctx, tx, c)
	})
}

func updateCase(ctx context.Context, tx *sql.Tx, c *domain.Case) error {
	var stored int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM evidence WHERE case_id = ?`, c.ID).Scan(&stored)
	if err != nil {
		return fmt.Errorf("count evidence: %w", err)
	}
	if c.BriefItems > stored {
		return fmt.Errorf("%w: brief covers %d items, %d stored", ErrStale, c.BriefItems, stored)
	}

	query := `
	UPDATE cases SET brief = ?, filename = ?, context = ?, brief_items = ?, turn_count = ?, updated_at = ?
	WHERE id = ?`

	result, err := tx.ExecContext(ctx, query,
		c.Brief, c.Filename, c.Context, c.BriefItems, c.TurnCount, toMillis(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update case: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
