package ranking

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"talentboard/internal/logging"
	"talentboard/pkg/models"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	cache := &Cache{
		client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		ttl:    time.Minute,
		logger: logging.GetGlobalLogger(),
	}
	t.Cleanup(func() {
		if err := cache.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return cache, mr
}

func rankedGroups() []models.JobApplicants {
	return []models.JobApplicants{{
		JobID:    "job-1",
		JobTitle: "Backend Engineer",
		Applicants: []models.ApplicantWithScore{
			applicant("alice", 90),
			applicant("bob", 70),
		},
	}}
}

func TestCacheBestApplicantsRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	gen := cache.Generation(ctx, "emp-1")
	cache.SetBestApplicants(ctx, "emp-1", gen, rankedGroups())

	got, ok := cache.GetBestApplicants(ctx, "emp-1")
	if !ok {
		t.Fatal("expected cache hit after Set")
	}
	if len(got) != 1 || got[0].JobID != "job-1" || len(got[0].Applicants) != 2 {
		t.Errorf("unexpected cached payload: %+v", got)
	}
}

func TestCacheInvalidateDropsPayloads(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	gen := cache.Generation(ctx, "emp-1")
	cache.SetBestApplicants(ctx, "emp-1", gen, rankedGroups())
	cache.SetSummary(ctx, "emp-1", gen, &models.Summary{TotalApplicants: 2})

	if err := cache.InvalidateEmployer(ctx, "emp-1"); err != nil {
		t.Fatalf("InvalidateEmployer: %v", err)
	}

	if _, ok := cache.GetBestApplicants(ctx, "emp-1"); ok {
		t.Error("applicants payload survived invalidation")
	}
	if _, ok := cache.GetSummary(ctx, "emp-1"); ok {
		t.Error("summary payload survived invalidation")
	}
	if got := cache.Generation(ctx, "emp-1"); got != 1 {
		t.Errorf("Generation = %d, want 1", got)
	}

	// The generation counter itself must not live forever.
	if ttl := mr.TTL("ranking:gen:emp-1"); ttl <= 0 {
		t.Errorf("generation key has no expiry, TTL = %v", ttl)
	}
}

func TestCacheStaleWriteLosesToInvalidation(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	// A rebuild takes the generation, then an invalidation lands before
	// the rebuild finishes. Its write must be discarded.
	gen := cache.Generation(ctx, "emp-1")
	if err := cache.InvalidateEmployer(ctx, "emp-1"); err != nil {
		t.Fatalf("InvalidateEmployer: %v", err)
	}

	cache.SetBestApplicants(ctx, "emp-1", gen, rankedGroups())
	if _, ok := cache.GetBestApplicants(ctx, "emp-1"); ok {
		t.Error("stale rebuild overwrote the invalidated cache")
	}

	cache.SetSummary(ctx, "emp-1", gen, &models.Summary{TotalApplicants: 2})
	if _, ok := cache.GetSummary(ctx, "emp-1"); ok {
		t.Error("stale summary overwrote the invalidated cache")
	}

	// A rebuild started after the invalidation writes normally.
	fresh := cache.Generation(ctx, "emp-1")
	cache.SetBestApplicants(ctx, "emp-1", fresh, rankedGroups())
	if _, ok := cache.GetBestApplicants(ctx, "emp-1"); !ok {
		t.Error("fresh rebuild was not cached")
	}
}

func TestCachePayloadsExpire(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	gen := cache.Generation(ctx, "emp-1")
	cache.SetBestApplicants(ctx, "emp-1", gen, rankedGroups())

	mr.FastForward(2 * time.Minute)

	if _, ok := cache.GetBestApplicants(ctx, "emp-1"); ok {
		t.Error("payload survived past its TTL")
	}
}
