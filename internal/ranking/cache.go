package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"talentboard/internal/config"
	"talentboard/internal/logging"
	"talentboard/pkg/models"
)

// Cache stores ranked applicant payloads per employer in Redis with a
// bounded TTL. A per-employer generation counter guards writes: a fetch
// that was superseded by an invalidation cannot overwrite the fresher
// state, so a stale in-flight read never wins.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// Generation counters outlive the cached payloads but must not pile up
// forever; an expired counter just restarts the employer at zero.
const generationTTL = 24 * time.Hour

// setWithGen stores a payload only if the employer's generation still
// matches the one taken before the rebuild. The compare and the write
// run server-side in one step, so an invalidation can never interleave
// between them.
var setWithGen = redis.NewScript(`
local gen = redis.call('GET', KEYS[1])
if gen == false then gen = '0' end
if gen ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// NewCache creates a Redis-backed ranking cache from configuration.
func NewCache(cfg *config.Config) *Cache {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		opts = &redis.Options{
			Addr: "localhost:6379",
			DB:   cfg.Redis.DB,
		}
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = cfg.Redis.Timeout
	opts.WriteTimeout = cfg.Redis.Timeout

	return &Cache{
		client: redis.NewClient(opts),
		ttl:    cfg.Redis.CacheTTL,
		logger: logging.GetGlobalLogger(),
	}
}

// Ping tests the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Generation returns the employer's current invalidation generation.
// Callers take it before a rebuild and pass it back on Set.
func (c *Cache) Generation(ctx context.Context, employerID string) int64 {
	gen, err := c.client.Get(ctx, c.genKey(employerID)).Int64()
	if err != nil {
		return 0
	}
	return gen
}

// GetBestApplicants returns the cached ranked listing, if present.
func (c *Cache) GetBestApplicants(ctx context.Context, employerID string) ([]models.JobApplicants, bool) {
	data, err := c.client.Get(ctx, c.applicantsKey(employerID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Ranking cache read failed", map[string]interface{}{
				"employer_id": employerID,
				"error":       err.Error(),
			})
		}
		return nil, false
	}

	var groups []models.JobApplicants
	if err := json.Unmarshal([]byte(data), &groups); err != nil {
		return nil, false
	}
	return groups, true
}

// SetBestApplicants caches the ranked listing unless the employer's
// generation moved on while the rebuild was in flight.
func (c *Cache) SetBestApplicants(ctx context.Context, employerID string, gen int64, groups []models.JobApplicants) {
	data, err := json.Marshal(groups)
	if err != nil {
		return
	}
	c.setGuarded(ctx, employerID, c.applicantsKey(employerID), gen, data)
}

// GetSummary returns the cached aggregation stats, if present.
func (c *Cache) GetSummary(ctx context.Context, employerID string) (*models.Summary, bool) {
	data, err := c.client.Get(ctx, c.summaryKey(employerID)).Result()
	if err != nil {
		return nil, false
	}

	var summary models.Summary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, false
	}
	return &summary, true
}

// SetSummary caches the aggregation stats under the same generation guard.
func (c *Cache) SetSummary(ctx context.Context, employerID string, gen int64, summary *models.Summary) {
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	c.setGuarded(ctx, employerID, c.summaryKey(employerID), gen, data)
}

// setGuarded runs the atomic compare-gen-and-set script.
func (c *Cache) setGuarded(ctx context.Context, employerID, key string, gen int64, data []byte) {
	keys := []string{c.genKey(employerID), key}
	err := setWithGen.Run(ctx, c.client, keys, gen, data, c.ttl.Milliseconds()).Err()
	if err != nil {
		c.logger.Warn("Ranking cache write failed", map[string]interface{}{
			"employer_id": employerID,
			"key":         key,
			"error":       err.Error(),
		})
	}
}

// InvalidateEmployer bumps the employer's generation and drops the
// cached payloads. Any rebuild started before this call will observe the
// generation change and skip its cache write.
func (c *Cache) InvalidateEmployer(ctx context.Context, employerID string) error {
	if err := c.client.Incr(ctx, c.genKey(employerID)).Err(); err != nil {
		return fmt.Errorf("bump cache generation: %w", err)
	}
	if err := c.client.Expire(ctx, c.genKey(employerID), generationTTL).Err(); err != nil {
		return fmt.Errorf("expire cache generation: %w", err)
	}
	if err := c.client.Del(ctx, c.applicantsKey(employerID), c.summaryKey(employerID)).Err(); err != nil {
		return fmt.Errorf("drop cached rankings: %w", err)
	}
	return nil
}

func (c *Cache) applicantsKey(employerID string) string {
	return fmt.Sprintf("ranking:applicants:%s", employerID)
}

func (c *Cache) summaryKey(employerID string) string {
	return fmt.Sprintf("ranking:summary:%s", employerID)
}

func (c *Cache) genKey(employerID string) string {
	return fmt.Sprintf("ranking:gen:%s", employerID)
}
