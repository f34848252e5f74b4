package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionPostgres is the durable session store backing. The whole
// history window is read and written as one JSONB value, matching the
// read-modify-write cycle of the orchestrator.
type SessionPostgres struct {
	db *pgxpool.Pool
}

var _ SessionRepository = &SessionPostgres{}

func NewSessionPostgres(db *pgxpool.Pool) *SessionPostgres {
	return &SessionPostgres{db: db}
}

func (r *SessionPostgres) History(ctx context.Context, sessionID string) ([]string, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT turns FROM chat_sessions WHERE id = $1`,
		sessionID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session history: %w", err)
	}

	var turns []string
	if err := json.Unmarshal(raw, &turns); err != nil {
		return nil, fmt.Errorf("decode session history: %w", err)
	}

	return turns, nil
}

func (r *SessionPostgres) SaveHistory(ctx context.Context, sessionID string, turns []string) error {
	if turns == nil {
		turns = []string{}
	}

	raw, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("encode session history: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO chat_sessions (id, turns, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (id) DO UPDATE SET turns = $2, updated_at = now()`,
		sessionID, raw,
	)
	if err != nil {
		return fmt.Errorf("save session history: %w", err)
	}

	return nil
}
