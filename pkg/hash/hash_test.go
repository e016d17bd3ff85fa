package hash

import (
	"testing"
)

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(\"hello\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	// SHA256 of empty string
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestKeyFingerprint(t *testing.T) {
	fp := KeyFingerprint("vd_live_abc123")

	// 12 hex chars: long enough to correlate, too short to reverse.
	if len(fp) != 12 {
		t.Errorf("fingerprint length = %d, want 12", len(fp))
	}

	// Deterministic
	if fp != KeyFingerprint("vd_live_abc123") {
		t.Error("KeyFingerprint should be deterministic")
	}

	// Different keys produce different fingerprints
	if fp == KeyFingerprint("vd_live_xyz789") {
		t.Error("different keys should produce different fingerprints")
	}

	// Fingerprint must match the full hash prefix
	if fp != SHA256Hex("vd_live_abc123")[:12] {
		t.Error("fingerprint should be the SHA256 prefix")
	}
}

func TestKeyFingerprint_Empty(t *testing.T) {
	if got := KeyFingerprint(""); got != "" {
		t.Errorf("KeyFingerprint(\"\") = %q, want empty", got)
	}
}
