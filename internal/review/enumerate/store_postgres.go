package enumerate

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore answers existence queries from the reference tables kept in
// PostgreSQL. Every query is a point lookup on an indexed code column.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ActivityExists(ctx context.Context, code int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM ref_activities WHERE code = $1)`, code)
}

func (s *PostgresStore) StateExists(ctx context.Context, code string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM ref_states WHERE code = $1)`, code)
}

func (s *PostgresStore) NationalityExists(ctx context.Context, code int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM ref_nationalities WHERE code = $1)`, code)
}

func (s *PostgresStore) CountryExists(ctx context.Context, code string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM ref_countries WHERE code = $1)`, code)
}

func (s *PostgresStore) MaritalStatusExists(ctx context.Context, code int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM ref_marital_statuses WHERE code = $1)`, code)
}

func (s *PostgresStore) CityExists(ctx context.Context, country, state string, city int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM ref_cities
			WHERE country = $1 AND state = $2 AND code = $3
		)
	`
	return s.exists(ctx, query, country, state, city)
}

func (s *PostgresStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("reference lookup: %w", err)
	}
	return ok, nil
}
