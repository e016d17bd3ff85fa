package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/viraldaily/viraldaily-go/internal/model"
)

const youtubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTube fetches the most-popular chart from the YouTube Data API v3.
type YouTube struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewYouTube(client *http.Client, apiKey string) *YouTube {
	return &YouTube{client: client, apiKey: apiKey, baseURL: youtubeBaseURL}
}

func (y *YouTube) Platform() model.Platform {
	return model.PlatformYouTube
}

type ytThumbnail struct {
	URL string `json:"url"`
}

type ytVideo struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string    `json:"title"`
		Description  string    `json:"description"`
		ChannelTitle string    `json:"channelTitle"`
		PublishedAt  time.Time `json:"publishedAt"`
		Thumbnails   struct {
			MaxRes   ytThumbnail `json:"maxres"`
			Standard ytThumbnail `json:"standard"`
			High     ytThumbnail `json:"high"`
			Medium   ytThumbnail `json:"medium"`
			Default  ytThumbnail `json:"default"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

type ytVideoList struct {
	Items []ytVideo `json:"items"`
	Error *struct {
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// FetchTrending returns up to limit videos from the US most-popular chart.
func (y *YouTube) FetchTrending(ctx context.Context, limit int) ([]model.VideoRecord, error) {
	if y.apiKey == "" {
		return nil, fmt.Errorf("youtube: %w", ErrUnauthorized)
	}

	q := url.Values{}
	q.Set("part", "snippet,statistics,contentDetails")
	q.Set("chart", "mostPopular")
	q.Set("regionCode", "US")
	q.Set("maxResults", strconv.Itoa(limit))
	q.Set("key", y.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL+"/videos?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("youtube: %w", err)
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube: %v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	var list ytVideoList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("youtube: decode: %v: %w", err, ErrUnavailable)
	}

	if resp.StatusCode != http.StatusOK {
		// Quota exhaustion surfaces as 403 with reason quotaExceeded.
		if list.Error != nil {
			for _, e := range list.Error.Errors {
				if strings.Contains(e.Reason, "quota") || strings.Contains(e.Reason, "rateLimit") {
					return nil, fmt.Errorf("youtube: %s: %w", e.Reason, ErrRateLimited)
				}
			}
		}
		return nil, fmt.Errorf("youtube: %w", classifyStatus(resp.StatusCode))
	}

	records := make([]model.VideoRecord, 0, len(list.Items))
	for _, item := range list.Items {
		rec := y.normalize(item)
		EnsureThumbnail(&rec)
		records = append(records, rec)
	}
	return records, nil
}

func (y *YouTube) normalize(item ytVideo) model.VideoRecord {
	views, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
	likes, _ := strconv.ParseInt(item.Statistics.LikeCount, 10, 64)
	comments, _ := strconv.ParseInt(item.Statistics.CommentCount, 10, 64)

	thumb := item.Snippet.Thumbnails.MaxRes.URL
	for _, candidate := range []string{
		item.Snippet.Thumbnails.Standard.URL,
		item.Snippet.Thumbnails.High.URL,
		item.Snippet.Thumbnails.Medium.URL,
		item.Snippet.Thumbnails.Default.URL,
	} {
		if thumb != "" {
			break
		}
		thumb = candidate
	}

	createdAt := item.Snippet.PublishedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	desc := truncate(item.Snippet.Description, 200)

	return model.VideoRecord{
		ID:              RecordID(model.PlatformYouTube, item.ID),
		Platform:        model.PlatformYouTube,
		Title:           item.Snippet.Title,
		Description:     desc,
		Creator:         item.Snippet.ChannelTitle,
		URL:             "https://www.youtube.com/watch?v=" + item.ID,
		ThumbnailURL:    thumb,
		ViewCount:       views,
		LikeCount:       likes,
		CommentCount:    comments,
		DurationSeconds: ParseISODuration(item.ContentDetails.Duration),
		CreatedAt:       createdAt,
		Source:          model.SourceLive,
	}
}

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts a YouTube ISO-8601 duration (PT1H2M3S) to
// seconds. Unparseable input yields 0.
func ParseISODuration(d string) int {
	m := isoDurationRe.FindStringSubmatch(d)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	s, _ := strconv.Atoi(m[3])
	return h*3600 + min*60 + s
}
