package internal_test

import (
	"context"
	"os"
	"testing"
	"time"

	"commission-calculator/internal"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRun(t *testing.T) {
	t.Parallel()

	run := internal.NewRun([]internal.Commission{{Fee: 1.00}, {Fee: 4.55}, {Fee: 0.47}})

	assert.NotEmpty(t, run.ID)
	assert.WithinDuration(t, time.Now(), run.CreatedAt, time.Minute)
	assert.Equal(t, []float64{1.00, 4.55, 0.47}, run.Commissions)
	assert.Equal(t, 6.02, run.TotalFee)
}

// Runs against a real redis only when REDIS_TEST_ADDR is set.
func TestRedisRunRepository(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())

	repo := internal.NewRedisRunRepository(rdb)
	require.NoError(t, repo.Purge(ctx))
	t.Cleanup(func() { repo.Purge(ctx) })

	old := internal.NewRun([]internal.Commission{{Fee: 1}})
	old.CreatedAt = time.Now().Add(-48 * time.Hour).UTC()
	recent := internal.NewRun([]internal.Commission{{Fee: 2}})

	require.NoError(t, repo.Add(ctx, old))
	require.NoError(t, repo.Add(ctx, recent))

	all, err := repo.Find(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, old.ID, all[0].ID)

	filtered, err := repo.Find(ctx, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, recent.ID, filtered[0].ID)
}
