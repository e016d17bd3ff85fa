package service

import (
	"math"
	"testing"

	"github.com/viraldaily/viraldaily-go/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreCompute_Bounds(t *testing.T) {
	svc := NewScoreService()

	tests := []struct {
		name                           string
		views, likes, comments, shares int64
	}{
		{"zero everything", 0, 0, 0, 0},
		{"tiny video", 1, 0, 0, 0},
		{"modest video", 10_000, 500, 50, 20},
		{"viral video", 50_000_000, 4_000_000, 300_000, 900_000},
		{"mega viral", 8_200_000_000, 48_000_000, 4_100_000, 12_000_000},
		{"absurd engagement", 100, 1_000_000, 1_000_000, 1_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, rate, err := svc.Compute(tt.views, tt.likes, tt.comments, tt.shares)
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}
			if score < 0 || score > 100 {
				t.Errorf("score = %.4f, want within [0,100]", score)
			}
			if rate < 0 {
				t.Errorf("engagement rate = %.4f, want >= 0", rate)
			}
		})
	}
}

func TestScoreCompute_ZeroViews(t *testing.T) {
	svc := NewScoreService()

	score, rate, err := svc.Compute(0, 0, 0, 0)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	// log10(max(0,1)) = 0 and no engagement → score 0, no division by zero.
	if !almostEqual(score, 0) {
		t.Errorf("score = %.4f, want 0", score)
	}
	if !almostEqual(rate, 0) {
		t.Errorf("engagement rate = %.4f, want 0", rate)
	}
}

func TestScoreCompute_MonotonicInViews(t *testing.T) {
	svc := NewScoreService()

	// Fixed 5% engagement ratio at every rung so only views vary.
	var prev float64 = -1
	for _, views := range []int64{100, 10_000, 1_000_000, 100_000_000, 10_000_000_000} {
		eng := views / 20
		score, _, err := svc.Compute(views, eng, 0, 0)
		if err != nil {
			t.Fatalf("Compute(%d) returned error: %v", views, err)
		}
		if score < prev {
			t.Errorf("score decreased with views: %.4f after %.4f at views=%d", score, prev, views)
		}
		prev = score
	}
}

func TestScoreCompute_MonotonicInEngagement(t *testing.T) {
	svc := NewScoreService()

	const views = 1_000_000
	var prev float64 = -1
	for _, likes := range []int64{0, 1_000, 10_000, 50_000, 100_000} {
		score, _, err := svc.Compute(views, likes, 0, 0)
		if err != nil {
			t.Fatalf("Compute(likes=%d) returned error: %v", likes, err)
		}
		if score < prev {
			t.Errorf("score decreased with engagement: %.4f after %.4f at likes=%d", score, prev, likes)
		}
		prev = score
	}
}

func TestScoreCompute_Deterministic(t *testing.T) {
	svc := NewScoreService()

	s1, r1, err := svc.Compute(1_400_000_000, 15_000_000, 2_200_000, 2_000_000)
	if err != nil {
		t.Fatalf("first Compute returned error: %v", err)
	}
	s2, r2, err := svc.Compute(1_400_000_000, 15_000_000, 2_200_000, 2_000_000)
	if err != nil {
		t.Fatalf("second Compute returned error: %v", err)
	}
	if s1 != s2 || r1 != r2 {
		t.Errorf("identical inputs scored differently: (%.6f, %.6f) vs (%.6f, %.6f)", s1, r1, s2, r2)
	}
}

func TestScoreCompute_KnownValue(t *testing.T) {
	svc := NewScoreService()

	// 1M views, 20k interactions → viewComponent=60, rate=2%,
	// engagementComponent=10 → 0.65*60 + 0.35*10 = 42.5
	score, rate, err := svc.Compute(1_000_000, 15_000, 3_000, 2_000)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if !almostEqual(rate, 2.0) {
		t.Errorf("engagement rate = %.4f, want 2.0", rate)
	}
	if !almostEqual(score, 42.5) {
		t.Errorf("score = %.4f, want 42.5", score)
	}
}

func TestScoreCompute_NegativeInput(t *testing.T) {
	svc := NewScoreService()

	tests := []struct {
		name                           string
		views, likes, comments, shares int64
	}{
		{"negative views", -1, 0, 0, 0},
		{"negative likes", 100, -5, 0, 0},
		{"negative comments", 100, 0, -1, 0},
		{"negative shares", 100, 0, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Compute(tt.views, tt.likes, tt.comments, tt.shares); err == nil {
				t.Error("expected error for negative metric, got nil")
			}
		})
	}
}

func TestScoreRecord_AssignsInPlace(t *testing.T) {
	svc := NewScoreService()

	rec := model.VideoRecord{
		ID:           "youtube_dQw4w9WgXcQ",
		ViewCount:    1_000_000,
		LikeCount:    15_000,
		CommentCount: 3_000,
		ShareCount:   2_000,
	}
	if err := svc.ScoreRecord(&rec); err != nil {
		t.Fatalf("ScoreRecord returned error: %v", err)
	}
	if !almostEqual(rec.ViralScore, 42.5) {
		t.Errorf("ViralScore = %.4f, want 42.5", rec.ViralScore)
	}
	if !almostEqual(rec.EngagementRate, 2.0) {
		t.Errorf("EngagementRate = %.4f, want 2.0", rec.EngagementRate)
	}
}

func TestScoreRecord_ErrorNamesRecord(t *testing.T) {
	svc := NewScoreService()

	rec := model.VideoRecord{ID: "tiktok_broken", ViewCount: -1}
	err := svc.ScoreRecord(&rec)
	if err == nil {
		t.Fatal("expected error for negative views")
	}
}
