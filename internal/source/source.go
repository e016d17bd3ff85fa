package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/viraldaily/viraldaily-go/internal/model"
)

// Source-level failure taxonomy. All three kinds are recovered locally by the
// aggregator via fallback substitution and never propagate to API callers.
var (
	// ErrUnauthorized means the upstream credential is missing or invalid.
	ErrUnauthorized = errors.New("upstream credential missing or invalid")
	// ErrUnavailable covers network failures, timeouts and upstream 5xx.
	ErrUnavailable = errors.New("upstream unavailable")
	// ErrRateLimited means the upstream quota is exhausted.
	ErrRateLimited = errors.New("upstream rate limited")
)

// Adapter fetches raw trending items from one upstream platform and
// normalizes them to VideoRecords. Implementations are stateless and safe
// to invoke concurrently; each call is bounded by the caller's context.
type Adapter interface {
	Platform() model.Platform
	FetchTrending(ctx context.Context, limit int) ([]model.VideoRecord, error)
}

// classifyStatus maps an upstream HTTP status to the failure taxonomy.
// nil is returned for 2xx.
func classifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("status %d: %w", status, ErrUnauthorized)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("status %d: %w", status, ErrRateLimited)
	default:
		return fmt.Errorf("status %d: %w", status, ErrUnavailable)
	}
}

// defaultThumbnails guarantees every record carries a working thumbnail URL
// even when the upstream omits one.
var defaultThumbnails = map[model.Platform]string{
	model.PlatformYouTube: "https://picsum.photos/seed/youtube/400/225",
	model.PlatformTikTok:  "https://picsum.photos/seed/tiktok/400/225",
	model.PlatformTwitter: "https://picsum.photos/seed/twitter/400/225",
}

// EnsureThumbnail substitutes the platform default when a record has no
// thumbnail URL.
func EnsureThumbnail(rec *model.VideoRecord) {
	if rec.ThumbnailURL == "" {
		rec.ThumbnailURL = defaultThumbnails[rec.Platform]
	}
}

// RecordID builds the globally unique record id "<platform>_<native_id>".
func RecordID(platform model.Platform, nativeID string) string {
	return string(platform) + "_" + nativeID
}

// truncate shortens s to at most limit characters plus an ellipsis. It cuts
// on rune boundaries: tweets and video descriptions are routinely non-ASCII
// and a byte slice could split a character into invalid UTF-8.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
