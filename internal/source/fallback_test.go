package source

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/viraldaily/viraldaily-go/internal/model"
)

func TestFallbackGenerate_ExactCount(t *testing.T) {
	gen := NewFallbackGenerator()
	now := time.Now().UTC()

	for _, platform := range model.AllPlatforms() {
		for _, count := range []int{1, 4, 8, 10, 25} {
			got := gen.Generate(platform, count, now, nil)
			if len(got) != count {
				t.Errorf("Generate(%s, %d) returned %d records", platform, count, len(got))
			}
		}
	}
}

func TestFallbackGenerate_DeterministicIDs(t *testing.T) {
	gen := NewFallbackGenerator()

	// Different wall-clock anchors must not change which records come back.
	first := gen.Generate(model.PlatformYouTube, 10, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	second := gen.Generate(model.PlatformYouTube, 10, time.Date(2026, 6, 15, 12, 30, 0, 0, time.UTC), nil)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("record %d id differs: %s vs %s", i, first[i].ID, second[i].ID)
		}
		if first[i].ViewCount != second[i].ViewCount {
			t.Errorf("record %d views differ: %d vs %d", i, first[i].ViewCount, second[i].ViewCount)
		}
	}
}

func TestFallbackGenerate_CyclingKeepsIDsUnique(t *testing.T) {
	gen := NewFallbackGenerator()
	now := time.Now().UTC()

	for _, platform := range model.AllPlatforms() {
		count := gen.CatalogSize(platform)*2 + 3
		got := gen.Generate(platform, count, now, nil)

		seen := make(map[string]bool, len(got))
		for _, rec := range got {
			if seen[rec.ID] {
				t.Errorf("%s: duplicate id %s when cycling past catalog size", platform, rec.ID)
			}
			seen[rec.ID] = true
		}
	}
}

func TestFallbackGenerate_RecordShape(t *testing.T) {
	gen := NewFallbackGenerator()
	now := time.Now().UTC()

	for _, platform := range model.AllPlatforms() {
		for _, rec := range gen.Generate(platform, 8, now, nil) {
			if rec.Platform != platform {
				t.Errorf("record %s platform = %s, want %s", rec.ID, rec.Platform, platform)
			}
			if rec.Source != model.SourceFallback {
				t.Errorf("record %s source = %s, want fallback", rec.ID, rec.Source)
			}
			if !strings.HasPrefix(rec.ID, string(platform)+"_") {
				t.Errorf("record id %s missing platform prefix", rec.ID)
			}
			if rec.Title == "" || rec.Creator == "" {
				t.Errorf("record %s missing title or creator", rec.ID)
			}
			if _, err := url.ParseRequestURI(rec.URL); err != nil {
				t.Errorf("record %s has invalid URL %q: %v", rec.ID, rec.URL, err)
			}
			if _, err := url.ParseRequestURI(rec.ThumbnailURL); err != nil {
				t.Errorf("record %s has invalid thumbnail %q: %v", rec.ID, rec.ThumbnailURL, err)
			}
			if rec.ViewCount <= 0 {
				t.Errorf("record %s has non-positive views", rec.ID)
			}
			if rec.CreatedAt.After(now) {
				t.Errorf("record %s created_at %s is in the future", rec.ID, rec.CreatedAt)
			}
		}
	}
}

func TestFallbackGenerate_TimestampsDescend(t *testing.T) {
	gen := NewFallbackGenerator()
	now := time.Now().UTC()

	got := gen.Generate(model.PlatformTwitter, 8, now, nil)
	for i := 1; i < len(got); i++ {
		if !got[i].CreatedAt.Before(got[i-1].CreatedAt) {
			t.Errorf("timestamps not strictly descending at index %d", i)
		}
	}
}

func TestFallbackGenerate_SkipsExcludedIDs(t *testing.T) {
	gen := NewFallbackGenerator()
	now := time.Now().UTC()

	full := gen.Generate(model.PlatformYouTube, 8, now, nil)
	exclude := map[string]bool{
		full[0].ID: true,
		full[3].ID: true,
	}

	got := gen.Generate(model.PlatformYouTube, 8, now, exclude)

	// The shortfall is still met in full, skipping past the excluded
	// entries into the next catalog cycle.
	if len(got) != 8 {
		t.Fatalf("Generate with exclusions returned %d records, want 8", len(got))
	}
	seen := make(map[string]bool, len(got))
	for _, rec := range got {
		if exclude[rec.ID] {
			t.Errorf("excluded id %s was generated anyway", rec.ID)
		}
		if seen[rec.ID] {
			t.Errorf("duplicate id %s", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestFallbackGenerate_EdgeCounts(t *testing.T) {
	gen := NewFallbackGenerator()
	now := time.Now().UTC()

	if got := gen.Generate(model.PlatformYouTube, 0, now, nil); got != nil {
		t.Errorf("Generate with count 0 = %d records, want nil", len(got))
	}
	if got := gen.Generate(model.Platform("myspace"), 5, now, nil); got != nil {
		t.Errorf("Generate for unknown platform = %d records, want nil", len(got))
	}
}

func TestFallbackCatalogSize(t *testing.T) {
	gen := NewFallbackGenerator()
	for _, platform := range model.AllPlatforms() {
		if gen.CatalogSize(platform) < 8 {
			t.Errorf("%s catalog has %d entries, want at least 8", platform, gen.CatalogSize(platform))
		}
	}
}
