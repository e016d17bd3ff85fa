package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/viraldaily/viraldaily-go/internal/model"
)

// SnapshotRepo persists per-cycle aggregation snapshots for the analytics
// endpoint.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepo(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// InsertBatch writes a batch of platform snapshots in a single round trip.
func (r *SnapshotRepo) InsertBatch(ctx context.Context, snapshots []model.PlatformSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range snapshots {
		batch.Queue(`
			INSERT INTO aggregation_snapshots
				(cycle_id, platform, live_count, fallback_count,
				 top_video_id, top_video_title, max_score, avg_score,
				 total_views, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			s.CycleID, string(s.Platform), s.LiveCount, s.FallbackCount,
			s.TopVideoID, s.TopVideoTitle, s.MaxScore, s.AvgScore,
			s.TotalViews, s.CreatedAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range snapshots {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// Summary aggregates snapshots per platform since the given cutoff.
// Fallback records never contribute to score or view aggregates; they are
// only counted.
func (r *SnapshotRepo) Summary(ctx context.Context, since time.Time) ([]model.PlatformStats, error) {
	query := `
		SELECT platform,
		       COUNT(*)                     AS cycles,
		       COALESCE(SUM(live_count), 0) AS live_records,
		       COALESCE(SUM(fallback_count), 0) AS fallback_records,
		       COALESCE(AVG(avg_score) FILTER (WHERE live_count > 0), 0) AS avg_score,
		       COALESCE(MAX(max_score), 0)  AS max_score,
		       COALESCE(SUM(total_views), 0) AS total_views,
		       COALESCE(
		           (ARRAY_AGG(top_video_title ORDER BY max_score DESC)
		            FILTER (WHERE top_video_title <> ''))[1], '') AS top_video
		FROM aggregation_snapshots
		WHERE created_at >= $1
		GROUP BY platform
		ORDER BY platform`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []model.PlatformStats
	for rows.Next() {
		var s model.PlatformStats
		var platform string
		err := rows.Scan(
			&platform, &s.Cycles, &s.LiveRecords, &s.FallbackUsed,
			&s.AvgScore, &s.MaxScore, &s.TotalViews, &s.TopVideoTitle,
		)
		if err != nil {
			return nil, err
		}
		s.Platform = model.Platform(platform)
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
