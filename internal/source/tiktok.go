package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/viraldaily/viraldaily-go/internal/model"
)

const tiktokBaseURL = "https://open.tiktokapis.com/v2"

// TikTok fetches trending videos through the TikTok research API. Public
// access to that API is restrictive, so this adapter failing is a normal
// outcome: the aggregator substitutes fallback records without surfacing
// an error.
type TikTok struct {
	client      *http.Client
	accessToken string
	baseURL     string
}

func NewTikTok(client *http.Client, accessToken string) *TikTok {
	return &TikTok{client: client, accessToken: accessToken, baseURL: tiktokBaseURL}
}

func (t *TikTok) Platform() model.Platform {
	return model.PlatformTikTok
}

type ttQueryRequest struct {
	MaxCount int `json:"max_count"`
	Query    struct {
		And []ttCondition `json:"and"`
	} `json:"query"`
}

type ttCondition struct {
	Operation string   `json:"operation"`
	FieldName string   `json:"field_name"`
	Values    []string `json:"field_values"`
}

type ttQueryResponse struct {
	Data struct {
		Videos []struct {
			ID           int64  `json:"id"`
			Description  string `json:"video_description"`
			Username     string `json:"username"`
			CoverURL     string `json:"cover_image_url"`
			Duration     int    `json:"duration"`
			CreateTime   int64  `json:"create_time"`
			ViewCount    int64  `json:"view_count"`
			LikeCount    int64  `json:"like_count"`
			CommentCount int64  `json:"comment_count"`
			ShareCount   int64  `json:"share_count"`
		} `json:"videos"`
	} `json:"data"`
}

// FetchTrending returns up to limit trending US videos.
func (t *TikTok) FetchTrending(ctx context.Context, limit int) ([]model.VideoRecord, error) {
	if t.accessToken == "" {
		return nil, fmt.Errorf("tiktok: %w", ErrUnauthorized)
	}

	var reqBody ttQueryRequest
	reqBody.MaxCount = limit
	reqBody.Query.And = []ttCondition{
		{Operation: "IN", FieldName: "region_code", Values: []string{"US"}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("tiktok: %w", err)
	}

	endpoint := t.baseURL + "/research/video/query/?fields=id,video_description,username,cover_image_url,duration,create_time,view_count,like_count,comment_count,share_count"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("tiktok: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tiktok: %v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tiktok: %w", classifyStatus(resp.StatusCode))
	}

	var query ttQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&query); err != nil {
		return nil, fmt.Errorf("tiktok: decode: %v: %w", err, ErrUnavailable)
	}

	records := make([]model.VideoRecord, 0, len(query.Data.Videos))
	for _, v := range query.Data.Videos {
		nativeID := strconv.FormatInt(v.ID, 10)

		createdAt := time.Now().UTC()
		if v.CreateTime > 0 {
			createdAt = time.Unix(v.CreateTime, 0).UTC()
		}

		rec := model.VideoRecord{
			ID:              RecordID(model.PlatformTikTok, nativeID),
			Platform:        model.PlatformTikTok,
			Title:           v.Description,
			Creator:         "@" + v.Username,
			URL:             "https://www.tiktok.com/@" + v.Username + "/video/" + nativeID,
			ThumbnailURL:    v.CoverURL,
			ViewCount:       v.ViewCount,
			LikeCount:       v.LikeCount,
			CommentCount:    v.CommentCount,
			ShareCount:      v.ShareCount,
			DurationSeconds: v.Duration,
			CreatedAt:       createdAt,
			Source:          model.SourceLive,
		}
		EnsureThumbnail(&rec)
		records = append(records, rec)
	}
	return records, nil
}
