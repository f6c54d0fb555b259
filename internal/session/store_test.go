package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eventora/backoffice/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func sampleSession() models.Session {
	return models.Session{
		Token:     "h.p.s",
		UserType:  string(models.UserTypeCompany),
		UserRole:  models.RoleClaimCompany,
		UserID:    "u1",
		CompanyID: "42",
	}
}

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	db := setupDB(t, "store_roundtrip")
	store := NewSQLiteStore(db)
	ctx := context.Background()

	want := sampleSession()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSQLiteStore_LoadEmpty(t *testing.T) {
	db := setupDB(t, "store_empty")
	store := NewSQLiteStore(db)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	require.True(t, got.Empty(), "absent markers must read as empty strings")
}

func TestSQLiteStore_SaveOverwritesPreviousSession(t *testing.T) {
	db := setupDB(t, "store_overwrite")
	store := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))

	next := models.Session{
		Token:    "h2.p2.s2",
		UserType: string(models.UserTypeAdmin),
		UserRole: models.RoleClaimAdmin,
		UserID:   "a1",
	}
	require.NoError(t, store.Save(ctx, next))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, next, got)
	require.Empty(t, got.CompanyID, "stale tenant marker must not leak through")
}

func TestSQLiteStore_ClearIsIdempotent(t *testing.T) {
	db := setupDB(t, "store_clear")
	store := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, got.Empty())
}

func TestOpenDatabase_RunsMigrations(t *testing.T) {
	db, err := OpenDatabase(context.Background(), "file:store_migrations?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewSQLiteStore(db)
	require.NoError(t, store.Save(context.Background(), sampleSession()))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, sampleSession(), got)
}

func TestMemoryStore_Contract(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, got.Empty())

	require.NoError(t, store.Save(ctx, sampleSession()))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, sampleSession(), got)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	require.True(t, got.Empty())
}
