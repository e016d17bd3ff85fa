package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/viraldaily/viraldaily-go/internal/metrics"
	"github.com/viraldaily/viraldaily-go/internal/middleware"
	"github.com/viraldaily/viraldaily-go/internal/model"
	"github.com/viraldaily/viraldaily-go/internal/source"
)

// DefaultFetchTimeout bounds each adapter call. A timed-out platform is
// treated like any other unavailable upstream.
const DefaultFetchTimeout = 4 * time.Second

// AggregatorService orchestrates the per-platform adapters, substitutes
// fallback records for failed or short results, scores everything, and
// produces one deterministic ranked list. It never fails outward for
// upstream reasons: total upstream failure degrades to an all-fallback set.
type AggregatorService struct {
	adapters  map[model.Platform]source.Adapter
	fallback  *source.FallbackGenerator
	scores    *ScoreService
	snapshots *SnapshotWorker
	timeout   time.Duration
}

// NewAggregatorService wires the adapters by platform. snapshots may be nil
// when no snapshot store is configured.
func NewAggregatorService(adapters []source.Adapter, fallback *source.FallbackGenerator, scores *ScoreService, snapshots *SnapshotWorker, timeout time.Duration) *AggregatorService {
	byPlatform := make(map[model.Platform]source.Adapter, len(adapters))
	for _, a := range adapters {
		byPlatform[a.Platform()] = a
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &AggregatorService{
		adapters:  byPlatform,
		fallback:  fallback,
		scores:    scores,
		snapshots: snapshots,
		timeout:   timeout,
	}
}

type platformResult struct {
	platform model.Platform
	records  []model.VideoRecord
	err      error
}

// Aggregate returns exactly limit records for the filtered platform (or all
// platforms when filter is nil), ranked by viral score. The only error it
// can return is a scoring invariant violation, which is a programming
// defect and must fail the request loudly.
func (s *AggregatorService) Aggregate(ctx context.Context, filter *model.Platform, limit int) ([]model.VideoRecord, error) {
	started := time.Now()
	now := started.UTC()

	platforms := model.AllPlatforms()
	if filter != nil {
		platforms = []model.Platform{*filter}
	}

	// Even per-platform share, rounded up so truncation never undershoots.
	perPlatform := (limit + len(platforms) - 1) / len(platforms)

	// One goroutine per platform with its own timeout. One platform's
	// failure never blocks or cancels another's; results land in a
	// per-platform slot so no locking is needed beyond the WaitGroup.
	results := make([]platformResult, len(platforms))
	var wg sync.WaitGroup
	for i, platform := range platforms {
		wg.Add(1)
		go func(i int, platform model.Platform) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			adapter, ok := s.adapters[platform]
			if !ok {
				results[i] = platformResult{platform: platform, err: source.ErrUnauthorized}
				return
			}
			records, err := adapter.FetchTrending(fetchCtx, perPlatform)
			results[i] = platformResult{platform: platform, records: records, err: err}
		}(i, platform)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		// Caller went away; results are simply discarded.
		return nil, err
	}

	merged := make([]model.VideoRecord, 0, perPlatform*len(platforms))
	cycle := make([]model.PlatformSnapshot, 0, len(platforms))

	for _, res := range results {
		live := res.records
		if res.err != nil {
			s.recordFailure(res.platform, res.err)
			live = nil
		}
		// Collapse upstream repeats before sizing the shortfall, and keep
		// the live id set so substitution skips colliding catalog entries.
		// The catalog is real trending videos, so a live result genuinely
		// can carry the same id as a fallback entry.
		live = dedupeByID(live)
		if len(live) > perPlatform {
			live = live[:perPlatform]
		}
		liveIDs := make(map[string]bool, len(live))
		for _, rec := range live {
			liveIDs[rec.ID] = true
		}

		// Top up to the per-platform share. Shortfalls and outright
		// failures are handled identically: this is what guarantees a
		// full, link-valid result set no matter how many upstreams die.
		var substituted []model.VideoRecord
		if missing := perPlatform - len(live); missing > 0 {
			substituted = s.fallback.Generate(res.platform, missing, now, liveIDs)
			if metrics.Metrics.FallbackRecords != nil {
				metrics.Metrics.FallbackRecords.WithLabelValues(string(res.platform)).Add(float64(len(substituted)))
			}
		}

		records := append(live, substituted...)
		for i := range records {
			if err := s.scores.ScoreRecord(&records[i]); err != nil {
				return nil, err
			}
		}

		cycle = append(cycle, buildSnapshot(res.platform, records, now))
		merged = append(merged, records...)
	}

	merged = dedupeByID(merged)
	sortRecords(merged)
	if len(merged) > limit {
		merged = merged[:limit]
	}

	if s.snapshots != nil {
		s.snapshots.Record(cycle)
	}
	if metrics.Metrics.AggregationDuration != nil {
		metrics.Metrics.AggregationDuration.Observe(time.Since(started).Seconds())
	}
	return merged, nil
}

func (s *AggregatorService) recordFailure(platform model.Platform, err error) {
	kind := "unavailable"
	switch {
	case errors.Is(err, source.ErrUnauthorized):
		kind = "unauthorized"
	case errors.Is(err, source.ErrRateLimited):
		kind = "rate_limited"
	}

	// TikTok failing to fallback is the expected steady state, not an
	// operational problem worth a warning.
	evt := middleware.Logger.Warn()
	if platform == model.PlatformTikTok {
		evt = middleware.Logger.Debug()
	}
	evt.Str("platform", string(platform)).Str("kind", kind).Err(err).Msg("upstream failed, substituting fallback")

	if metrics.Metrics.UpstreamFailures != nil {
		metrics.Metrics.UpstreamFailures.WithLabelValues(string(platform), kind).Inc()
	}
}

// dedupeByID collapses records sharing an id; the later-fetched record
// replaces the earlier one in place.
func dedupeByID(records []model.VideoRecord) []model.VideoRecord {
	index := make(map[string]int, len(records))
	out := records[:0]
	for _, rec := range records {
		if at, seen := index[rec.ID]; seen {
			out[at] = rec
			continue
		}
		index[rec.ID] = len(out)
		out = append(out, rec)
	}
	return out
}

// sortRecords orders by viral score descending, then created_at descending
// (newer wins), then id ascending so reruns over identical inputs produce
// byte-identical ordering.
func sortRecords(records []model.VideoRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.ViralScore != b.ViralScore {
			return a.ViralScore > b.ViralScore
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func buildSnapshot(platform model.Platform, records []model.VideoRecord, now time.Time) model.PlatformSnapshot {
	snap := model.PlatformSnapshot{
		CycleID:   uuid.NewString(),
		Platform:  platform,
		CreatedAt: now,
	}

	// Fallback records are excluded from the analytics aggregates; they
	// only bump the substitution counter.
	var scoreSum float64
	for _, rec := range records {
		if rec.Source == model.SourceFallback {
			snap.FallbackCount++
			continue
		}
		snap.LiveCount++
		snap.TotalViews += rec.ViewCount
		scoreSum += rec.ViralScore
		if rec.ViralScore > snap.MaxScore {
			snap.MaxScore = rec.ViralScore
			snap.TopVideoID = rec.ID
			snap.TopVideoTitle = rec.Title
		}
	}
	if snap.LiveCount > 0 {
		snap.AvgScore = scoreSum / float64(snap.LiveCount)
	}
	return snap
}
