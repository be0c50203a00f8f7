package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ShortIP returns a salted, truncated hash of an IP address for request logs.
func ShortIP(ip, salt string) string {
	return SHA256Hex(salt + ip)[:16]
}

// CacheKey joins parts into a namespaced Redis key. Parts after the first
// are hashed so arbitrary query values never end up in key names.
func CacheKey(namespace string, parts ...string) string {
	if len(parts) == 0 {
		return namespace
	}
	return namespace + ":" + SHA256Hex(strings.Join(parts, "\x00"))[:32]
}

// FileSHA256 returns the hex-encoded SHA256 of a file's contents.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
