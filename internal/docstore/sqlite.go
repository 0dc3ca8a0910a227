package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pfell/starboard/internal/model"
)

// SQLiteStore keeps documents in the documents table, one row per key.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (*model.FamilyState, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	var st model.FamilyState
	if err := json.Unmarshal([]byte(body), &st); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &st, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, st *model.FamilyState) error {
	body, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (key, body) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`,
		key, string(body),
	)
	if err != nil {
		return fmt.Errorf("set document: %w", err)
	}
	return nil
}
