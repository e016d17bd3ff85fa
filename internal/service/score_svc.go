package service

import (
	"fmt"
	"math"

	"github.com/viraldaily/viraldaily-go/internal/model"
)

// Scoring weights. The formula is a fixed heuristic, not a learned model:
//
//	viewComponent  = min(log10(max(views, 1)) * 10, 100)
//	engagementRate = (likes + comments + shares) / views * 100
//	engagementComp = min(engagementRate * 5, 100)
//	viralScore     = clamp(0.65*viewComponent + 0.35*engagementComp, 0, 100)
//
// The score is monotonic in view count for a fixed engagement ratio,
// monotonic in engagement ratio for fixed views, and fully deterministic.
// There is no recency term: identical inputs must always rank identically,
// so freshness is handled by the sort tiebreak instead.
const (
	viewWeight       = 0.65
	engagementWeight = 0.35

	// A 20% engagement rate saturates the engagement component.
	engagementSaturation = 5.0
)

// ScoreService computes the unified viral score and engagement rate for
// records from every platform, live and fallback alike.
type ScoreService struct{}

func NewScoreService() *ScoreService {
	return &ScoreService{}
}

// Compute returns the viral score in [0,100] and the engagement rate as a
// percentage. A non-finite result is a programming defect and fails the
// whole request rather than silently corrupting the ranking.
func (s *ScoreService) Compute(views, likes, comments, shares int64) (float64, float64, error) {
	if views < 0 || likes < 0 || comments < 0 || shares < 0 {
		return 0, 0, fmt.Errorf("score: negative metric (views=%d likes=%d comments=%d shares=%d)", views, likes, comments, shares)
	}

	viewComponent := math.Min(math.Log10(math.Max(float64(views), 1))*10, 100)

	var engagementRate float64
	if views > 0 {
		engagementRate = float64(likes+comments+shares) / float64(views) * 100
	}
	engagementComponent := math.Min(engagementRate*engagementSaturation, 100)

	score := viewWeight*viewComponent + engagementWeight*engagementComponent
	score = math.Max(0, math.Min(score, 100))

	if math.IsNaN(score) || math.IsInf(score, 0) || math.IsNaN(engagementRate) {
		return 0, 0, fmt.Errorf("score: non-finite result for views=%d likes=%d comments=%d shares=%d", views, likes, comments, shares)
	}
	return score, engagementRate, nil
}

// ScoreRecord computes and assigns ViralScore and EngagementRate in place.
// Upstream-reported scores are never trusted; this is the only writer.
func (s *ScoreService) ScoreRecord(rec *model.VideoRecord) error {
	score, rate, err := s.Compute(rec.ViewCount, rec.LikeCount, rec.CommentCount, rec.ShareCount)
	if err != nil {
		return fmt.Errorf("record %s: %w", rec.ID, err)
	}
	rec.ViralScore = score
	rec.EngagementRate = rate
	return nil
}
