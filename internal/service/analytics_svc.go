package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viraldaily/viraldaily-go/internal/model"
	"github.com/viraldaily/viraldaily-go/internal/repository"
)

// ErrAnalyticsUnavailable is returned when no snapshot store is configured.
var ErrAnalyticsUnavailable = errors.New("analytics store not configured")

// analyticsWindow is the aggregate window served by the analytics endpoint.
const analyticsWindow = 24 * time.Hour

// AnalyticsService serves per-platform aggregates built from persisted
// aggregation snapshots.
type AnalyticsService struct {
	repo *repository.SnapshotRepo
}

// NewAnalyticsService wraps the snapshot repo. repo may be nil when the
// database is not configured; the service then reports unavailable.
func NewAnalyticsService(repo *repository.SnapshotRepo) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// Overview returns the last 24 hours of per-platform aggregates.
func (s *AnalyticsService) Overview(ctx context.Context) (*model.AnalyticsResponse, error) {
	if s.repo == nil {
		return nil, ErrAnalyticsUnavailable
	}

	now := time.Now().UTC()
	stats, err := s.repo.Summary(ctx, now.Add(-analyticsWindow))
	if err != nil {
		return nil, err
	}

	for i := range stats {
		stats[i].TotalViewsFmt = formatCount(stats[i].TotalViews)
	}

	return &model.AnalyticsResponse{
		GeneratedAt: now,
		WindowHours: int(analyticsWindow.Hours()),
		Platforms:   stats,
	}, nil
}

// formatCount renders large counts the way the UI displays them (1.4B, 35.8M).
func formatCount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
