package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"emend/internal/review/models"
	dErrors "emend/pkg/domain-errors"
)

// PostgresStore keeps each registration as a JSONB document keyed by the
// account's unique id.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, uniqueID string) (*models.Record, error) {
	var (
		id  string
		doc []byte
	)
	query := `SELECT id, doc FROM user_records WHERE unique_id = $1`
	err := s.db.QueryRowContext(ctx, query, uniqueID).Scan(&id, &doc)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dErrors.New(dErrors.CodeNotFound, "user record not found")
		}
		return nil, fmt.Errorf("get user record: %w", err)
	}

	var record models.Record
	if err := json.Unmarshal(doc, &record); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}
	record.ID = id
	record.UniqueID = uniqueID
	return &record, nil
}

func (s *PostgresStore) Update(ctx context.Context, uniqueID string, record *models.Record) (int64, error) {
	doc, err := json.Marshal(record)
	if err != nil {
		return 0, fmt.Errorf("encode user record: %w", err)
	}

	query := `
		UPDATE user_records
		SET doc = $2, updated_at = $3
		WHERE unique_id = $1
	`
	result, err := s.db.ExecContext(ctx, query, uniqueID, doc, record.ChangeControl.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("update user record: %w", err)
	}
	matched, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update user record: %w", err)
	}
	return matched, nil
}
