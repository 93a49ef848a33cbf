package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_UnavailableBypassesCache(t *testing.T) {
	r := NewRedisWithClient(nil, time.Minute, nil)
	ctx := context.Background()

	var out map[string]any
	hit, err := r.GetJSON(ctx, JobListPrefix+"x", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, r.SetJSON(ctx, "k", map[string]int{"a": 1}, 0))
	assert.NoError(t, r.Delete(ctx, "k"))
	assert.NoError(t, r.InvalidateJobs(ctx))
	assert.NoError(t, r.InvalidateSkills(ctx))

	gen, err := r.JobsGeneration(ctx)
	require.NoError(t, err)
	assert.Zero(t, gen)
	assert.Error(t, r.Ping(ctx))

	ok, err := r.SetIfNotExists(ctx, JobListLockPrefix+"x", "1", time.Second)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, r.Close())
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", nil)
	assert.NoError(t, err)
	assert.False(t, hit)
}
