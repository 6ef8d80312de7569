package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

// CreateSimulation inserts a new simulation.
func (s *SQLiteStore) CreateSimulation(ctx context.Context, sim *domain.Simulation) error {
	query := `
	INSERT INTO simulations (id, state, user_role, materials, debrief, turn_count, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		sim.ID, string(sim.State), string(sim.UserRole), sim.Materials, sim.Debrief, sim.TurnCount,
		toMillis(sim.CreatedAt), toMillis(sim.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert simulation: %w", err)
	}
	return nil
}

// GetSimulation loads a simulation with its turns.
func (s *SQLiteStore) GetSimulation(ctx context.Context, id string) (*domain.Simulation, error) {
	query := `
		SELECT id, state, user_role, materials, debrief, turn_count, created_at, updated_at
		FROM simulations WHERE id = ?`

	var sim domain.Simulation
	var state, role string
	var createdAt, updatedAt int64
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&sim.ID, &state, &role, &sim.Materials, &sim.Debrief, &sim.TurnCount, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan simulation row: %w", err)
	}
	sim.State = domain.SimState(state)
	sim.UserRole = domain.Party(role)
	sim.CreatedAt = fromMillis(createdAt)
	sim.UpdatedAt = fromMillis(updatedAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT role, text, created_at FROM chat_turns WHERE simulation_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var turn domain.ChatTurn
		var turnRole string
		var at int64
		if err := rows.Scan(&turnRole, &turn.Text, &at); err != nil {
			return nil, fmt.Errorf("scan turn row: %w", err)
		}
		turn.Role = domain.Role(turnRole)
		turn.CreatedAt = fromMillis(at)
		sim.Turns = append(sim.Turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turns: %w", err)
	}

	return &sim, nil
}

// SaveSimulation stores the simulation row and replaces its turns.
func (s *SQLiteStore) SaveSimulation(ctx context.Context, sim *domain.Simulation) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		query := `
		UPDATE simulations SET state = ?, user_role = ?, materials = ?, debrief = ?, turn_count = ?, updated_at = ?
		WHERE id = ?`
		result, err := tx.ExecContext(ctx, query,
			string(sim.State), string(sim.UserRole), sim.Materials, sim.Debrief, sim.TurnCount,
			toMillis(sim.UpdatedAt), sim.ID,
		)
		if err != nil {
			return fmt.Errorf("update simulation: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if rows == 0 {
			return ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM chat_turns WHERE simulation_id = ?`, sim.ID); err != nil {
			return fmt.Errorf("delete turns: %w", err)
		}
		for i, turn := range sim.Turns {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO chat_turns (simulation_id, seq, role, text, created_at) VALUES (?, ?, ?, ?, ?)`,
				sim.ID, i+1, string(turn.Role), turn.Text, toMillis(turn.CreatedAt),
			); err != nil {
				return fmt.Errorf("insert turn %d: %w", i+1, err)
			}
		}
		return nil
	})
}
