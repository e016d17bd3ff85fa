package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/viraldaily/viraldaily-go/internal/model"
)

func newTestYouTube(t *testing.T, handler http.HandlerFunc) *YouTube {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	yt := NewYouTube(srv.Client(), "test-key")
	yt.baseURL = srv.URL
	return yt
}

func TestYouTubeFetch_MissingKey(t *testing.T) {
	yt := NewYouTube(http.DefaultClient, "")
	if _, err := yt.FetchTrending(context.Background(), 5); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestYouTubeFetch_NormalizesItems(t *testing.T) {
	yt := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("chart"); got != "mostPopular" {
			t.Errorf("chart = %q, want mostPopular", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [{
				"id": "abc123xyz00",
				"snippet": {
					"title": "Trending clip",
					"description": "A description",
					"channelTitle": "Some Channel",
					"publishedAt": "2026-08-20T10:00:00Z",
					"thumbnails": {
						"high": {"url": "https://i.ytimg.com/vi/abc123xyz00/hqdefault.jpg"}
					}
				},
				"statistics": {
					"viewCount": "1234567",
					"likeCount": "89000",
					"commentCount": "4500"
				},
				"contentDetails": {"duration": "PT4M13S"}
			}]
		}`))
	})

	got, err := yt.FetchTrending(context.Background(), 5)
	if err != nil {
		t.Fatalf("FetchTrending returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}

	rec := got[0]
	if rec.ID != "youtube_abc123xyz00" {
		t.Errorf("id = %s, want youtube_abc123xyz00", rec.ID)
	}
	if rec.Platform != model.PlatformYouTube {
		t.Errorf("platform = %s, want youtube", rec.Platform)
	}
	if rec.ViewCount != 1234567 || rec.LikeCount != 89000 || rec.CommentCount != 4500 {
		t.Errorf("metrics = %d/%d/%d, want 1234567/89000/4500", rec.ViewCount, rec.LikeCount, rec.CommentCount)
	}
	if rec.DurationSeconds != 253 {
		t.Errorf("duration = %d, want 253", rec.DurationSeconds)
	}
	if rec.URL != "https://www.youtube.com/watch?v=abc123xyz00" {
		t.Errorf("url = %s", rec.URL)
	}
	// maxres is absent, so the high-resolution variant must be chosen.
	if rec.ThumbnailURL != "https://i.ytimg.com/vi/abc123xyz00/hqdefault.jpg" {
		t.Errorf("thumbnail = %s", rec.ThumbnailURL)
	}
	if rec.Source != model.SourceLive {
		t.Errorf("source = %s, want live", rec.Source)
	}
}

func TestYouTubeFetch_QuotaExceeded(t *testing.T) {
	yt := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"errors": [{"reason": "quotaExceeded"}]}}`))
	})

	if _, err := yt.FetchTrending(context.Background(), 5); !errors.Is(err, ErrRateLimited) {
		t.Errorf("got %v, want ErrRateLimited", err)
	}
}

func TestYouTubeFetch_BadCredential(t *testing.T) {
	yt := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{}`))
	})

	if _, err := yt.FetchTrending(context.Background(), 5); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestYouTubeFetch_ServerError(t *testing.T) {
	yt := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := yt.FetchTrending(context.Background(), 5); !errors.Is(err, ErrUnavailable) {
		t.Errorf("got %v, want ErrUnavailable", err)
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT4M13S", 253},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"PT10M", 600},
		{"", 0},
		{"P1D", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		if got := ParseISODuration(tt.in); got != tt.want {
			t.Errorf("ParseISODuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
