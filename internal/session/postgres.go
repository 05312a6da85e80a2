package session

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists session state in a single keyed table so sessions
// survive process restarts. Values are opaque JSON blobs written by the
// assistant core.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(
		ctx,
		`CREATE TABLE IF NOT EXISTS "SessionRecord" (
			"sessionId" TEXT NOT NULL,
			key TEXT NOT NULL,
			"valueJson" JSONB NOT NULL,
			"updatedAt" TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY ("sessionId", key)
		)`,
	)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, sessionID, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(
		ctx,
		`SELECT "valueJson" FROM "SessionRecord" WHERE "sessionId" = $1 AND key = $2`,
		sessionID,
		key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	_, err := s.db.Exec(
		ctx,
		`INSERT INTO "SessionRecord" ("sessionId", key, "valueJson", "updatedAt")
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT ("sessionId", key)
		 DO UPDATE SET "valueJson" = EXCLUDED."valueJson", "updatedAt" = NOW()`,
		sessionID,
		key,
		value,
	)
	return err
}
