package storage_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/polyjournal/internal/adapters/storage"
)

func TestPostgresStorage_JournalContract(t *testing.T) {
	_ = godotenv.Load("../../../.env")
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := storage.NewPostgresStorage(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	cleanup := func() {
		_, err := pool.Exec(ctx, `DELETE FROM trade_notes WHERE wallet = $1`, wallet.String())
		require.NoError(t, err)
		_, err = pool.Exec(ctx, `DELETE FROM thesis_reviews WHERE wallet = $1`, wallet.String())
		require.NoError(t, err)
	}
	cleanup()
	t.Cleanup(cleanup)

	exerciseJournalStorage(t, db)
}
