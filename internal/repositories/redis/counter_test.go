package redis

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"visit-counter-api/internal/repositories"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepository connects to REDIS_ADDR. The tests are skipped when no
// server is configured.
func newTestRepository(t *testing.T) *CounterRepository {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping redis counter tests")
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	prefix := fmt.Sprintf("visits-test:%d:", time.Now().UnixNano())
	repo := NewCounterRepository(NewClient(Options{Addr: addr}), prefix, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := repo.Ping(ctx); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		repo.rdb.Del(context.Background(), repo.redisKey("total_visits"))
		repo.Close()
	})
	return repo
}

func TestCounterRepository_Scenario(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	count, err := repo.Get(ctx, "total_visits")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)

	exists, err := repo.rdb.Exists(ctx, repo.redisKey("total_visits")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists, "read must not create the key")

	count, err = repo.Increment(ctx, "total_visits")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	count, err = repo.Increment(ctx, "total_visits")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	count, err = repo.Get(ctx, "total_visits")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestCounterRepository_ConcurrentIncrements(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Increment(ctx, "total_visits")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := repo.Get(ctx, "total_visits")
	require.NoError(t, err)
	assert.Equal(t, uint64(n), count)
}

func TestCounterRepository_MalformedValue(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.rdb.Set(ctx, repo.redisKey("total_visits"), "lots", 0).Err())

	_, err := repo.Get(ctx, "total_visits")
	require.Error(t, err)
	assert.True(t, repositories.IsMalformedItem(err))
}

func TestCounterRepository_Unreachable(t *testing.T) {
	repo := NewCounterRepository(NewClient(Options{Addr: "127.0.0.1:1"}), "visits:", nil)
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := repo.Increment(ctx, "total_visits")
	require.Error(t, err)
	assert.True(t, repositories.IsStoreError(err))
}
