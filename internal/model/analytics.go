package model

import "time"

// PlatformSnapshot records one platform's share of a single aggregation
// cycle. Aggregate metrics cover live records only; fallback records are
// counted but excluded from score and view aggregates.
type PlatformSnapshot struct {
	CycleID       string
	Platform      Platform
	LiveCount     int
	FallbackCount int
	TopVideoID    string
	TopVideoTitle string
	MaxScore      float64
	AvgScore      float64
	TotalViews    int64
	CreatedAt     time.Time
}

// PlatformStats is the per-platform analytics aggregate over a time window.
type PlatformStats struct {
	Platform      Platform `json:"platform"`
	Cycles        int      `json:"cycles"`
	LiveRecords   int64    `json:"live_records"`
	FallbackUsed  int64    `json:"fallback_records"`
	AvgScore      float64  `json:"avg_viral_score"`
	MaxScore      float64  `json:"max_viral_score"`
	TotalViews    int64    `json:"total_views"`
	TotalViewsFmt string   `json:"total_views_display"`
	TopVideoTitle string   `json:"top_video"`
}

// AnalyticsResponse is the API response for the analytics endpoint
// (Pro/Business only).
type AnalyticsResponse struct {
	GeneratedAt time.Time       `json:"generated_at"`
	WindowHours int             `json:"window_hours"`
	Platforms   []PlatformStats `json:"platforms"`
}
