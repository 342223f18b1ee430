package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPostgresRepo_Store runs the shared contract against a live database.
// Set LENDIT_TEST_DATABASE_URL to a disposable database to enable it.
func TestPostgresRepo_Store(t *testing.T) {
	dsn := os.Getenv("LENDIT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("LENDIT_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := OpenDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(ctx, db))

	runStoreContract(t, func(t *testing.T) Store {
		_, err := db.ExecContext(ctx, `TRUNCATE bookings, items, users`)
		require.NoError(t, err)
		return NewPostgresRepo(db)
	})
}

func TestDBConfig_DSN(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: 5432, UserName: "lendit", Password: "secret", DBName: "lendit"}
	require.Equal(t, "host=db port=5432 user=lendit password=secret dbname=lendit sslmode=disable", cfg.DSN())

	cfg.SSLMode = "require"
	require.Contains(t, cfg.DSN(), "sslmode=require")
}
