package model

import "time"

// Platform identifies an upstream video source.
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformTikTok  Platform = "tiktok"
	PlatformTwitter Platform = "twitter"
)

// AllPlatforms returns every supported platform in a fixed order.
func AllPlatforms() []Platform {
	return []Platform{PlatformYouTube, PlatformTikTok, PlatformTwitter}
}

// ParsePlatform validates a user-supplied platform filter.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformYouTube, PlatformTikTok, PlatformTwitter:
		return Platform(s), true
	}
	return "", false
}

// RecordSource marks the provenance of a record. It drives internal policy
// (fallback records are excluded from analytics aggregates) and is never
// exposed raw in API responses.
type RecordSource string

const (
	SourceLive     RecordSource = "live"
	SourceFallback RecordSource = "fallback"
)

// VideoRecord is the unit of aggregation: one normalized trending video.
// Instances are created fresh per aggregation cycle, immutable once scored,
// and discarded after the response is built.
type VideoRecord struct {
	ID              string       `json:"id"`
	Platform        Platform     `json:"platform"`
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	Creator         string       `json:"author"`
	URL             string       `json:"url"`
	ThumbnailURL    string       `json:"thumbnail"`
	ViewCount       int64        `json:"views"`
	LikeCount       int64        `json:"likes"`
	CommentCount    int64        `json:"comments"`
	ShareCount      int64        `json:"shares"`
	DurationSeconds int          `json:"duration_seconds"`
	CreatedAt       time.Time    `json:"published_at"`
	ViralScore      float64      `json:"viral_score"`
	EngagementRate  float64      `json:"engagement_rate"`
	Source          RecordSource `json:"-"`
}

// VideoResponse is the API response for video aggregation requests.
type VideoResponse struct {
	Videos                   []VideoRecord `json:"videos"`
	Total                    int           `json:"total"`
	Platform                 *Platform     `json:"platform,omitempty"`
	Date                     time.Time     `json:"date"`
	UserTier                 Tier          `json:"user_tier"`
	HasAds                   bool          `json:"has_ads"`
	PremiumFeaturesAvailable bool          `json:"premium_features_available"`
}
