package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool for the session store.
func Connect(ctx context.Context, rawURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(normalizeDatabaseURL(rawURL))
	if err != nil {
		return nil, err
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}

// normalizeDatabaseURL rewrites the URL scheme to the one pgx accepts.
// Hosted providers hand out postgresql:// URLs; pgx wants postgres://.
func normalizeDatabaseURL(rawURL string) string {
	normalized := strings.TrimSpace(rawURL)
	if strings.HasPrefix(normalized, "postgresql://") {
		normalized = "postgres://" + strings.TrimPrefix(normalized, "postgresql://")
	}
	return normalized
}
