package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresStore writes audit entries to the outbox table. A relay ships the
// rows to the audit platform; the table is the durable handoff point, which
// is what lets the publisher stay fail-closed without calling the platform
// inline.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	query := `
		INSERT INTO audit_outbox (id, kind, unique_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.ExecContext(ctx, query,
		entry.ID, string(entry.Kind), entry.UniqueID, payload, entry.Timestamp,
	); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}
