package storage

import (
	"context"
	"strings"

	"github.com/alejandrodnm/polyjournal/internal/ports"
)

// Open elige el backend por el DSN: postgres:// o postgresql:// usan
// Postgres, cualquier otro valor es una ruta de SQLite.
func Open(ctx context.Context, dsn string) (ports.JournalStorage, error) {
	if IsPostgresDSN(dsn) {
		pg, err := NewPostgresStorage(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	lite, err := NewSQLiteStorage(dsn)
	if err != nil {
		return nil, err
	}
	return lite, nil
}

// IsPostgresDSN reporta si el DSN apunta a Postgres.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
