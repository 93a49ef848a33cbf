package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"skill-hire/internal/config"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 600 * time.Second

const (
	JobListPrefix     = "jobs:list:"
	JobListLockPrefix = "jobs:lock:"
	JobListGenKey     = "jobs:gen"
	SkillsPrefix      = "skills:"
)

type Redis struct {
	client *redis.Client
	logger *log.Logger
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

// NewRedis returns a cache that degrades to a no-op when Redis cannot be
// reached at startup.
func NewRedis(cfg config.RedisConfig, logger *log.Logger) *Redis {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
		}
		_ = client.Close()
		return &Redis{client: nil, logger: logger, ttl: cfg.TTL}
	}

	return &Redis{client: client, logger: logger, ttl: cfg.TTL}
}

// NewRedisWithClient wraps an existing client, mainly for tests.
func NewRedisWithClient(client *redis.Client, ttl time.Duration, logger *log.Logger) *Redis {
	return &Redis{client: client, logger: logger, ttl: ttl}
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

// noteFailure logs the first command error only; later failures are
// expected to repeat until Redis comes back.
func (r *Redis) noteFailure(op string, err error) {
	if r == nil || r.logger == nil || err == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] redis %s failed, continuing without cache err=%v", op, err)
	}
}

func (r *Redis) effectiveTTL(ttl time.Duration) time.Duration {
	switch {
	case ttl > 0:
		return ttl
	case r.ttl > 0:
		return r.ttl
	default:
		return DefaultTTL
	}
}

var errUnavailable = errors.New("cache: redis unavailable")

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return errUnavailable
	}
	return r.client.Ping(ctx).Err()
}

// GetJSON decodes the cached value into out and reports whether the key
// was present. A corrupt entry is dropped and treated as a miss.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		r.noteFailure("get", err)
		return false, err
	case len(b) == 0:
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		_ = r.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, b, r.effectiveTTL(ttl)).Err(); err != nil {
		r.noteFailure("set", err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.isUnavailable() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.noteFailure("del", err)
		return err
	}
	return nil
}

// SetIfNotExists is the job-list stampede lock. Without Redis nobody holds
// the lock, so callers fall through to the database.
func (r *Redis) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		r.noteFailure("setnx", err)
		return false, err
	}
	return ok, nil
}

// JobsGeneration is part of every job listing key. A missing counter reads
// as zero.
func (r *Redis) JobsGeneration(ctx context.Context) (int64, error) {
	if r.isUnavailable() {
		return 0, nil
	}
	gen, err := r.client.Get(ctx, JobListGenKey).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0, nil
	case err != nil:
		r.noteFailure("get", err)
		return 0, err
	}
	return gen, nil
}

// InvalidateJobs bumps the listing generation, so a page rebuilt from
// data read before the bump lands under a key nobody reads, then drops
// every cached page and stampede lock.
func (r *Redis) InvalidateJobs(ctx context.Context) error {
	if r.isUnavailable() {
		return nil
	}
	if err := r.client.Incr(ctx, JobListGenKey).Err(); err != nil {
		r.noteFailure("incr", err)
		return fmt.Errorf("cache: bump jobs generation: %w", err)
	}
	return r.invalidatePrefixes(ctx, JobListPrefix, JobListLockPrefix)
}

// InvalidateSkills drops the cached skill catalogue.
func (r *Redis) InvalidateSkills(ctx context.Context) error {
	return r.invalidatePrefixes(ctx, SkillsPrefix)
}

const scanBatch = 200

func (r *Redis) invalidatePrefixes(ctx context.Context, prefixes ...string) error {
	if r.isUnavailable() {
		return nil
	}
	var errs []error
	for _, prefix := range prefixes {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		n, err := r.unlinkMatching(ctx, prefix+"*")
		if err != nil {
			r.noteFailure("invalidate", err)
			errs = append(errs, fmt.Errorf("cache: invalidate %s: %w", prefix, err))
			continue
		}
		if n > 0 && r.logger != nil {
			r.logger.Printf("[Cache] invalidated prefix=%s keys=%d", prefix, n)
		}
	}
	return errors.Join(errs...)
}

// unlinkMatching walks the keyspace with SCAN and removes matches in
// batches so a large listing cache never blocks the server.
func (r *Redis) unlinkMatching(ctx context.Context, pattern string) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return removed, err
		}
		if len(keys) > 0 {
			if err := r.client.Unlink(ctx, keys...).Err(); err != nil {
				return removed, err
			}
			removed += len(keys)
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}
