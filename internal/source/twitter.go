package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/viraldaily/viraldaily-go/internal/model"
)

const (
	twitterBaseURL = "https://api.twitter.com/2"

	// High-engagement video tweets only; retweets would duplicate content.
	twitterSearchQuery = "(has:video OR has:media) -is:retweet min_faves:1000 lang:en"
)

// Twitter fetches recent high-engagement video tweets via the API v2
// recent-search endpoint with bearer-token auth.
type Twitter struct {
	client      *http.Client
	bearerToken string
	baseURL     string
}

func NewTwitter(client *http.Client, bearerToken string) *Twitter {
	return &Twitter{client: client, bearerToken: bearerToken, baseURL: twitterBaseURL}
}

func (t *Twitter) Platform() model.Platform {
	return model.PlatformTwitter
}

type twSearchResponse struct {
	Data []struct {
		ID            string    `json:"id"`
		Text          string    `json:"text"`
		AuthorID      string    `json:"author_id"`
		CreatedAt     time.Time `json:"created_at"`
		PublicMetrics struct {
			RetweetCount    int64 `json:"retweet_count"`
			ReplyCount      int64 `json:"reply_count"`
			LikeCount       int64 `json:"like_count"`
			ImpressionCount int64 `json:"impression_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"users"`
	} `json:"includes"`
}

// FetchTrending returns up to limit recent viral video tweets.
func (t *Twitter) FetchTrending(ctx context.Context, limit int) ([]model.VideoRecord, error) {
	if t.bearerToken == "" {
		return nil, fmt.Errorf("twitter: %w", ErrUnauthorized)
	}

	// The recent-search endpoint requires max_results in [10, 100].
	maxResults := limit
	if maxResults < 10 {
		maxResults = 10
	}
	if maxResults > 100 {
		maxResults = 100
	}

	q := url.Values{}
	q.Set("query", twitterSearchQuery)
	q.Set("max_results", strconv.Itoa(maxResults))
	q.Set("tweet.fields", "created_at,public_metrics,author_id")
	q.Set("expansions", "author_id")
	q.Set("user.fields", "username")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/tweets/search/recent?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("twitter: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.bearerToken)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twitter: %v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twitter: %w", classifyStatus(resp.StatusCode))
	}

	var search twSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("twitter: decode: %v: %w", err, ErrUnavailable)
	}

	usernames := make(map[string]string, len(search.Includes.Users))
	for _, u := range search.Includes.Users {
		usernames[u.ID] = u.Username
	}

	records := make([]model.VideoRecord, 0, limit)
	for _, tweet := range search.Data {
		if len(records) == limit {
			break
		}

		title := truncate(tweet.Text, 100)

		tweetURL := "https://twitter.com/i/status/" + tweet.ID
		creator := "unknown"
		if name, ok := usernames[tweet.AuthorID]; ok {
			creator = "@" + name
			tweetURL = "https://twitter.com/" + name + "/status/" + tweet.ID
		}

		createdAt := tweet.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		rec := model.VideoRecord{
			ID:           RecordID(model.PlatformTwitter, tweet.ID),
			Platform:     model.PlatformTwitter,
			Title:        title,
			Creator:      creator,
			URL:          tweetURL,
			ViewCount:    tweet.PublicMetrics.ImpressionCount,
			LikeCount:    tweet.PublicMetrics.LikeCount,
			CommentCount: tweet.PublicMetrics.ReplyCount,
			ShareCount:   tweet.PublicMetrics.RetweetCount,
			CreatedAt:    createdAt,
			Source:       model.SourceLive,
		}
		EnsureThumbnail(&rec)
		records = append(records, rec)
	}
	return records, nil
}
