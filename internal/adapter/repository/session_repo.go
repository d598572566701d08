package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"

	"vibe-resume/internal/domain"
	"vibe-resume/internal/model"
)

// PostgresStore keeps session records in a sessions table, one JSONB record
// per sanitized session id. It implements the same store interface as
// FileStore and is selected when a database URL is configured.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (r *PostgresStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	if r.pool == nil {
		return nil, nil
	}
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT record FROM sessions WHERE id = $1`, SanitizeID(id)).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load session: %s", id)
	}
	if err := model.ValidateSessionJSON(raw); err != nil {
		return nil, errors.Wrapf(err, "stored session is invalid: %s", id)
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, errors.Wrapf(err, "failed to decode session: %s", id)
	}
	return &sess, nil
}

func (r *PostgresStore) Put(ctx context.Context, sess *domain.Session) error {
	if r.pool == nil {
		return nil
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "failed to encode session")
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO sessions (id, record, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET record = EXCLUDED.record, updated_at = EXCLUDED.updated_at`,
		SanitizeID(sess.ID), raw, sess.CreatedAt, time.Now())
	if err != nil {
		return errors.Wrapf(err, "failed to save session: %s", sess.ID)
	}
	return nil
}

func (r *PostgresStore) Delete(ctx context.Context, id string) error {
	if r.pool == nil {
		return nil
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, SanitizeID(id)); err != nil {
		return errors.Wrapf(err, "failed to delete session: %s", id)
	}
	return nil
}
