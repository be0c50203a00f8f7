package hash

import (
	"os"
	"path/filepath"
	"strings"
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
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestShortIP(t *testing.T) {
	ip := "192.168.1.1"
	salt := "random-salt-value"
	h := ShortIP(ip, salt)

	if len(h) != 16 {
		t.Errorf("ShortIP length = %d, want 16", len(h))
	}
	if h != ShortIP(ip, salt) {
		t.Error("ShortIP should be deterministic")
	}
	if h == ShortIP(ip, "different-salt") {
		t.Error("different salts should produce different hashes")
	}
	if h == ShortIP("10.0.0.1", salt) {
		t.Error("different IPs should produce different hashes")
	}
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		parts     []string
		wantBare  bool
	}{
		{"namespace only", "stats", nil, true},
		{"with parts", "channels:list", []string{"subscriber_count", "10"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CacheKey(tt.namespace, tt.parts...)
			if tt.wantBare {
				if got != tt.namespace {
					t.Errorf("CacheKey(%q) = %q, want %q", tt.namespace, got, tt.namespace)
				}
				return
			}
			if !strings.HasPrefix(got, tt.namespace+":") {
				t.Errorf("CacheKey = %q, want prefix %q", got, tt.namespace+":")
			}
			if len(got) != len(tt.namespace)+1+32 {
				t.Errorf("CacheKey length = %d", len(got))
			}
		})
	}

	// Part boundaries matter: ("ab","c") and ("a","bc") must not collide.
	if CacheKey("x", "ab", "c") == CacheKey("x", "a", "bc") {
		t.Error("CacheKey should separate parts")
	}
}

func TestFileSHA256(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FileSHA256(path)
	if err != nil {
		t.Fatalf("FileSHA256: %v", err)
	}
	if got != SHA256Hex("hello") {
		t.Errorf("FileSHA256 = %s, want %s", got, SHA256Hex("hello"))
	}

	if _, err := FileSHA256(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
