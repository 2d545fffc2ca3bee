package sanction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"loanflow/pkg/platform/sentinel"
)

// PostgresStore persists sanctions in PostgreSQL. The unique session_id index
// backs the one-sanction-per-session invariant under concurrent issuance.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed sanction store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema is the DDL for the sanctions table.
const Schema = `
CREATE TABLE IF NOT EXISTS sanctions (
	id                TEXT PRIMARY KEY,
	session_id        TEXT NOT NULL UNIQUE,
	customer_id       TEXT NOT NULL,
	amount            BIGINT NOT NULL,
	tenure_months     INT NOT NULL,
	interest_rate_pct DOUBLE PRECISION NOT NULL,
	emi               BIGINT NOT NULL,
	issued_at         TIMESTAMPTZ NOT NULL
)`

const uniqueViolation = "23505"

func (s *PostgresStore) Create(ctx context.Context, sanc *Sanction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sanctions (id, session_id, customer_id, amount, tenure_months, interest_rate_pct, emi, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, sanc.ID, sanc.SessionID, sanc.CustomerID, sanc.Amount, sanc.TenureMonths, sanc.InterestRatePct, sanc.EMI, sanc.IssuedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("session %s already sanctioned: %w", sanc.SessionID, sentinel.ErrConflict)
		}
		return fmt.Errorf("create sanction: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Sanction, error) {
	return s.findBy(ctx, `id = $1`, id)
}

func (s *PostgresStore) FindBySessionID(ctx context.Context, sessionID string) (*Sanction, error) {
	return s.findBy(ctx, `session_id = $1`, sessionID)
}

func (s *PostgresStore) findBy(ctx context.Context, where, arg string) (*Sanction, error) {
	var sanc Sanction
	err := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, customer_id, amount, tenure_months, interest_rate_pct, emi, issued_at
		FROM sanctions WHERE `+where,
		arg,
	).Scan(&sanc.ID, &sanc.SessionID, &sanc.CustomerID, &sanc.Amount, &sanc.TenureMonths, &sanc.InterestRatePct, &sanc.EMI, &sanc.IssuedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sanction %s: %w", arg, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find sanction: %w", err)
	}
	return &sanc, nil
}
