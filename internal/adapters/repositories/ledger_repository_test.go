package repositories

import (
	"context"
	"testing"

	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/db"
	"waste-route-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id, date, area string, route ...string) domain.AllocationRecord {
	return domain.AllocationRecord{
		ID:           id,
		Date:         date,
		VehicleModel: "Tata Ace",
		DriverName:   "Abhi",
		WasteArea:    area,
		Distance:     25,
		FuelRequired: 25.0 / 13.0,
		TravelTime:   domain.TravelTime{Hours: 0, Minutes: 37},
		Route:        route,
	}
}

// exerciseLedgerRepository checks the behaviour every LedgerRepository shares.
func exerciseLedgerRepository(t *testing.T, repo ports.LedgerRepository) {
	t.Helper()
	ctx := context.Background()

	dates, err := repo.Dates(ctx)
	require.NoError(t, err)
	assert.Empty(t, dates)

	empty, err := repo.ListByDate(ctx, "01/01/2026")
	require.NoError(t, err)
	assert.Empty(t, empty)

	first := record("a1", "15/06/2026", "Gandhinagar", "Kanabargi", "Belgaum", "Gandhinagar")
	second := record("a2", "15/06/2026", "Belgaum", "Kanabargi", "Belgaum")
	other := record("a3", "02/07/2026", "Camp", "Kanabargi", "Camp")

	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))
	require.NoError(t, repo.Append(ctx, other))

	got, err := repo.ListByDate(ctx, "15/06/2026")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0])
	assert.Equal(t, second, got[1])

	dates, err = repo.Dates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"02/07/2026", "15/06/2026"}, dates)
}

func TestSqliteLedgerRepository(t *testing.T) {
	ctx := context.Background()

	conn, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(ctx, conn, DialectSQLite))
	// idempotent
	require.NoError(t, InitSchema(ctx, conn, DialectSQLite))

	exerciseLedgerRepository(t, NewSqliteLedgerRepository(conn))
}

func TestSqliteLedgerRepositoryRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()

	conn, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, InitSchema(ctx, conn, DialectSQLite))

	repo := NewSqliteLedgerRepository(conn)
	rec := record("dup", "15/06/2026", "Belgaum", "Kanabargi", "Belgaum")
	require.NoError(t, repo.Append(ctx, rec))
	assert.Error(t, repo.Append(ctx, rec))
}

func TestSqliteLedgerRepositoryEmptyRoute(t *testing.T) {
	ctx := context.Background()

	conn, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, InitSchema(ctx, conn, DialectSQLite))

	repo := NewSqliteLedgerRepository(conn)
	require.NoError(t, repo.Append(ctx, record("r", "15/06/2026", "Belgaum")))

	got, err := repo.ListByDate(ctx, "15/06/2026")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Route)
}

func TestInitSchemaErrors(t *testing.T) {
	ctx := context.Background()

	assert.Error(t, InitSchema(ctx, nil, DialectSQLite))

	conn, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	assert.Error(t, InitSchema(ctx, conn, Dialect("oracle")))
}

func TestNilHandles(t *testing.T) {
	ctx := context.Background()
	rec := record("x", "15/06/2026", "Belgaum")

	assert.Error(t, NewSqliteLedgerRepository(nil).Append(ctx, rec))
	assert.Error(t, NewSQLLedgerRepository(nil).Append(ctx, rec))
	assert.Error(t, NewRedisLedgerRepository(nil, "").Append(ctx, rec))

	_, err := NewSQLLedgerRepository(nil).Dates(ctx)
	assert.Error(t, err)
}

func TestRedisLedgerRepository(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := OpenRedis(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	repo := NewRedisLedgerRepository(client, "")
	exerciseLedgerRepository(t, repo)

	assert.True(t, mr.Exists(DefaultRedisPrefix+":dates"))
	n, err := client.LLen(context.Background(), DefaultRedisPrefix+":date:15/06/2026").Result()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRedisLedgerRepositoryPrefixIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	a := NewRedisLedgerRepository(client, "city-a")
	b := NewRedisLedgerRepository(client, "city-b")
	require.NoError(t, a.Append(ctx, record("a1", "15/06/2026", "Belgaum", "Kanabargi", "Belgaum")))

	got, err := b.ListByDate(ctx, "15/06/2026")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedis(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
