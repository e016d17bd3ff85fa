package middleware

import (
	"testing"

	"github.com/viraldaily/viraldaily-go/internal/model"
)

func TestValidatePlatform(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    *model.Platform
		wantErr bool
	}{
		{"empty means no filter", "", nil, false},
		{"whitespace means no filter", "   ", nil, false},
		{"youtube", "youtube", platformPtr(model.PlatformYouTube), false},
		{"tiktok", "tiktok", platformPtr(model.PlatformTikTok), false},
		{"twitter", "twitter", platformPtr(model.PlatformTwitter), false},
		{"case insensitive", "YouTube", platformPtr(model.PlatformYouTube), false},
		{"padded", " twitter ", platformPtr(model.PlatformTwitter), false},
		{"unknown platform", "instagram", nil, true},
		{"gibberish", "abc123", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidatePlatform(tt.in)
			if tt.wantErr {
				if msg == "" {
					t.Fatalf("ValidatePlatform(%q) succeeded, want error message", tt.in)
				}
				return
			}
			if msg != "" {
				t.Fatalf("ValidatePlatform(%q) failed: %s", tt.in, msg)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ValidatePlatform(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("ValidatePlatform(%q) = %s, want %s", tt.in, *got, *tt.want)
			}
		})
	}
}

func platformPtr(p model.Platform) *model.Platform {
	return &p
}

func TestValidateLimit(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{"empty applies default", "", DefaultLimit, false},
		{"minimum", "1", 1, false},
		{"typical", "25", 25, false},
		{"maximum", "100", 100, false},
		{"padded", " 50 ", 50, false},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
		{"over maximum", "101", 0, true},
		{"not a number", "ten", 0, true},
		{"float", "2.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidateLimit(tt.in)
			if tt.wantErr {
				if msg == "" {
					t.Fatalf("ValidateLimit(%q) succeeded with %d, want error message", tt.in, got)
				}
				return
			}
			if msg != "" {
				t.Fatalf("ValidateLimit(%q) failed: %s", tt.in, msg)
			}
			if got != tt.want {
				t.Errorf("ValidateLimit(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
