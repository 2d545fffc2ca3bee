package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"loanflow/internal/underwriting"
	"loanflow/pkg/platform/sentinel"
)

// PostgresStore persists financing sessions in PostgreSQL. The version column
// is an optimistic lock: Update writes only when the caller's version matches
// the stored row.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed session store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema is the DDL for the sessions table. Applied by deployment tooling and
// by integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS financing_sessions (
	id                      TEXT PRIMARY KEY,
	customer_id             TEXT NOT NULL,
	requested_amount        BIGINT NOT NULL,
	tenure_months           INT NOT NULL,
	status                  TEXT NOT NULL,
	declared_monthly_income BIGINT,
	proof_ref               TEXT NOT NULL DEFAULT '',
	last_decision           JSONB,
	version                 BIGINT NOT NULL,
	created_at              TIMESTAMPTZ NOT NULL,
	updated_at              TIMESTAMPTZ NOT NULL
)`

func (s *PostgresStore) Create(ctx context.Context, sess *FinancingSession) error {
	decision, err := marshalDecision(sess.LastDecision)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO financing_sessions
			(id, customer_id, requested_amount, tenure_months, status,
			 declared_monthly_income, proof_ref, last_decision, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, sess.ID, sess.CustomerID, sess.RequestedAmount, sess.TenureMonths, string(sess.Status),
		sess.DeclaredMonthlyIncome, sess.ProofRef, decision, sess.Version, sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*FinancingSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, customer_id, requested_amount, tenure_months, status,
		       declared_monthly_income, proof_ref, last_decision, version, created_at, updated_at
		FROM financing_sessions WHERE id = $1
	`, id)
	return scanSession(row, id)
}

func (s *PostgresStore) Update(ctx context.Context, sess *FinancingSession) error {
	decision, err := marshalDecision(sess.LastDecision)
	if err != nil {
		return err
	}
	now := time.Now()
	res, err := s.db.ExecContext(ctx, `
		UPDATE financing_sessions
		SET requested_amount = $1, tenure_months = $2, status = $3,
		    declared_monthly_income = $4, proof_ref = $5, last_decision = $6,
		    version = version + 1, updated_at = $7
		WHERE id = $8 AND version = $9
	`, sess.RequestedAmount, sess.TenureMonths, string(sess.Status), sess.DeclaredMonthlyIncome,
		sess.ProofRef, decision, now, sess.ID, sess.Version)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session rows affected: %w", err)
	}
	if affected == 0 {
		// Distinguish a lost CAS race from an unknown id.
		if _, findErr := s.FindByID(ctx, sess.ID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("session %s version %d: %w", sess.ID, sess.Version, sentinel.ErrConflict)
	}
	sess.Version++
	sess.UpdatedAt = now
	return nil
}

func marshalDecision(outcome *underwriting.Outcome) ([]byte, error) {
	if outcome == nil {
		return nil, nil
	}
	b, err := json.Marshal(outcome)
	if err != nil {
		return nil, fmt.Errorf("marshal decision: %w", err)
	}
	return b, nil
}

func scanSession(row *sql.Row, id string) (*FinancingSession, error) {
	var (
		sess     FinancingSession
		status   string
		income   sql.NullInt64
		decision []byte
	)
	err := row.Scan(&sess.ID, &sess.CustomerID, &sess.RequestedAmount, &sess.TenureMonths, &status,
		&income, &sess.ProofRef, &decision, &sess.Version, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	sess.Status = Status(status)
	if income.Valid {
		sess.DeclaredMonthlyIncome = &income.Int64
	}
	if len(decision) > 0 {
		var outcome underwriting.Outcome
		if err := json.Unmarshal(decision, &outcome); err != nil {
			return nil, fmt.Errorf("unmarshal decision: %w", err)
		}
		sess.LastDecision = &outcome
	}
	return &sess, nil
}
