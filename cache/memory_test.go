package cache

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeClock pins MemoryCache.now to a controllable instant.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(config MemoryCacheConfig) (*MemoryCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(config)
	c.now = clock.now
	return c, clock
}

func TestMemoryCache_GetSetDelete(t *testing.T) {
	c, _ := newTestCache(MemoryCacheConfig{})
	ctx := context.Background()
	key := Key("health", "report")

	if val, ok := c.Get(ctx, key); ok || val != nil {
		t.Fatalf("Get on empty cache = (%q, %v), want miss", val, ok)
	}

	if err := c.Set(ctx, key, []byte(`{"overall":"HEALTHY"}`), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok := c.Get(ctx, key)
	if !ok || string(got) != `{"overall":"HEALTHY"}` {
		t.Fatalf("Get() = (%q, %v)", got, ok)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := c.Get(ctx, key); ok {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of missing key error = %v", err)
	}
}

func TestMemoryCache_CopiesValues(t *testing.T) {
	c, _ := newTestCache(MemoryCacheConfig{})
	ctx := context.Background()

	buf := []byte("snapshot")
	if err := c.Set(ctx, "k", buf, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	buf[0] = 'X'

	got, _ := c.Get(ctx, "k")
	if string(got) != "snapshot" {
		t.Fatalf("stored value changed with caller buffer: %q", got)
	}
	got[0] = 'Y'
	if again, _ := c.Get(ctx, "k"); !bytes.Equal(again, []byte("snapshot")) {
		t.Errorf("stored value changed through returned slice: %q", again)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c, clock := newTestCache(MemoryCacheConfig{})
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 5*time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	clock.advance(4 * time.Second)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("entry should be fresh before its ttl")
	}

	clock.advance(time.Second)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("entry should expire exactly at its ttl")
	}
}

func TestMemoryCache_NonPositiveTTLStoresNothing(t *testing.T) {
	c, _ := newTestCache(MemoryCacheConfig{})
	ctx := context.Background()

	for _, ttl := range []time.Duration{0, -time.Second} {
		if err := c.Set(ctx, "k", []byte("v"), ttl); err != nil {
			t.Fatalf("Set(ttl=%s) error = %v", ttl, err)
		}
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestMemoryCache_MaxTTLClamp(t *testing.T) {
	c, clock := newTestCache(MemoryCacheConfig{MaxTTL: time.Minute})
	ctx := context.Background()

	if err := c.Set(ctx, "report", []byte("body"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	clock.advance(59 * time.Second)
	if _, ok := c.Get(ctx, "report"); !ok {
		t.Fatal("entry should be present before MaxTTL elapses")
	}

	clock.advance(2 * time.Second)
	if _, ok := c.Get(ctx, "report"); ok {
		t.Fatal("entry should expire at MaxTTL, not the requested ttl")
	}
	if n := c.Sweep(); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after Sweep", c.Len())
	}
}

func TestMemoryCache_MaxEntries(t *testing.T) {
	c, clock := newTestCache(MemoryCacheConfig{MaxEntries: 2})
	ctx := context.Background()

	mustSet := func(key string, ttl time.Duration) {
		t.Helper()
		if err := c.Set(ctx, key, []byte(key), ttl); err != nil {
			t.Fatalf("Set(%s) error = %v", key, err)
		}
	}

	mustSet("short", time.Second)
	mustSet("long", time.Hour)
	mustSet("newest", time.Minute)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Get(ctx, "short"); ok {
		t.Error("entry closest to expiry should be evicted")
	}

	// Overwriting an existing key never evicts.
	mustSet("long", time.Hour)
	if _, ok := c.Get(ctx, "newest"); !ok {
		t.Error("overwrite evicted another entry")
	}

	// Expired entries are swept before anything live is evicted.
	clock.advance(2 * time.Minute)
	mustSet("fresh", time.Minute)
	if _, ok := c.Get(ctx, "long"); !ok {
		t.Error("live entry evicted while an expired one was present")
	}
	if _, ok := c.Get(ctx, "fresh"); !ok {
		t.Error("new entry missing")
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	c, _ := newTestCache(MemoryCacheConfig{})
	ctx := context.Background()

	_, _ = c.Get(ctx, "k")
	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "k")

	if got := c.Stats(); got != (Stats{Hits: 2, Misses: 1}) {
		t.Errorf("Stats() = %+v, want 2 hits 1 miss", got)
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache(MemoryCacheConfig{MaxEntries: 4})
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		go func() {
			defer wg.Done()
			key := Key("health", "check", string(rune('a'+i%8)))
			for j := range 200 {
				switch j % 3 {
				case 0:
					_ = c.Set(ctx, key, []byte("v"), time.Minute)
				case 1:
					_, _ = c.Get(ctx, key)
				case 2:
					_ = c.Delete(ctx, key)
				}
			}
		}()
	}
	wg.Wait()

	if c.Len() > 4 {
		t.Errorf("Len() = %d, exceeds MaxEntries", c.Len())
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"namespaced", "health:report", false},
		{"empty", "", true},
		{"space", "health report", true},
		{"newline", "a\nb", true},
		{"control", "a\x00b", true},
		{"max length", strings.Repeat("k", MaxKeyLength), false},
		{"too long", strings.Repeat("k", MaxKeyLength+1), true},
	}

	c := NewMemoryCache(MemoryCacheConfig{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKey) {
					t.Errorf("error = %v, want ErrInvalidKey", err)
				}
				if setErr := c.Set(context.Background(), tt.key, []byte("v"), time.Minute); !errors.Is(setErr, ErrInvalidKey) {
					t.Errorf("Set() error = %v, want ErrInvalidKey", setErr)
				}
			}
		})
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		namespace string
		parts     []string
		want      string
	}{
		{"health", []string{"report"}, "health:report"},
		{"health", nil, "health"},
		{"health", []string{"check", "db:primary"}, "health:check:db_primary"},
	}
	for _, tt := range tests {
		if got := Key(tt.namespace, tt.parts...); got != tt.want {
			t.Errorf("Key(%q, %q) = %q, want %q", tt.namespace, tt.parts, got, tt.want)
		}
	}
}
