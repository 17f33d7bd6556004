//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestGuest(t *testing.T, db DBLike, email, name string) uuid.UUID {
	t.Helper()

	guestID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO guests (id, email, name) VALUES ($1, $2, $3) ON CONFLICT (email) DO NOTHING",
		guestID, email, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM guests WHERE email = $1", email).Scan(&guestID)
	}

	return guestID
}

func CreateTestCabin(t *testing.T, db DBLike, name string, maxCapacity int32, regularPrice, discount int64) uuid.UUID {
	t.Helper()

	cabinID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO cabins (id, name, max_capacity, regular_price, discount) VALUES ($1, $2, $3, $4, $5)",
		cabinID, name, maxCapacity, regularPrice, discount)
	require.NoError(t, err)

	return cabinID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO cabins (id, name, max_capacity, regular_price, discount) VALUES
		    ('00000000-0000-0000-0000-000000000001', 'Default Cabin', 4, 250, 50)
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
