package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// MaxKeyLength bounds the length of a cache key in bytes.
const MaxKeyLength = 256

// keySeparator joins the segments built by Key.
const keySeparator = ":"

// ErrInvalidKey is returned by Set for keys that fail ValidateKey.
var ErrInvalidKey = errors.New("cache: invalid key")

// Cache stores encoded snapshots for a bounded time.
//
// Implementations must be safe for concurrent use. Get never fails: a miss,
// an expired entry and an unreachable backend all read as (nil, false), so
// callers fall back to producing a fresh value.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value for ttl. A ttl of zero or less stores nothing.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Key builds a cache key from namespace and parts, e.g. Key("health", "report")
// yields "health:report". Separators inside a part are replaced so that
// distinct part lists never collide.
func Key(namespace string, parts ...string) string {
	var b strings.Builder
	b.WriteString(namespace)
	for _, p := range parts {
		b.WriteString(keySeparator)
		b.WriteString(strings.ReplaceAll(p, keySeparator, "_"))
	}
	return b.String()
}

// ValidateKey rejects empty or oversized keys and keys containing whitespace
// or control characters.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case len(key) > MaxKeyLength:
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidKey, len(key), MaxKeyLength)
	case strings.IndexFunc(key, func(r rune) bool { return unicode.IsSpace(r) || !unicode.IsPrint(r) }) >= 0:
		return fmt.Errorf("%w: %q contains whitespace or control characters", ErrInvalidKey, key)
	}
	return nil
}
