package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	if _, hit, _ := c.Get(ctx, "entity:a"); hit {
		t.Error("expected miss before Set")
	}

	// Round trip
	if err := c.Set(ctx, "entity:a", []byte(`{"href":"x"}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "entity:a")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if string(data) != `{"href":"x"}` {
		t.Errorf("Get returned %q", data)
	}

	// Expired entries are misses
	if err := c.Set(ctx, "entity:b", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "entity:b"); hit {
		t.Error("expired entry should be a miss")
	}

	// Delete
	if err := c.Delete(ctx, "entity:a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "entity:a"); hit {
		t.Error("expected miss after Delete")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "entity:gone"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// EntityKey is deterministic and URL-sensitive
	e1 := k.EntityKey("https://api.example.com/images/42")
	e2 := k.EntityKey("https://api.example.com/images/42")
	e3 := k.EntityKey("https://api.example.com/images/43")
	if e1 != e2 {
		t.Error("EntityKey should be deterministic")
	}
	if e1 == e3 {
		t.Error("Different URLs should produce different keys")
	}

	// SrcsetKey should include options in the hash
	s1 := k.SrcsetKey("hash123", SrcsetKeyOpts{Class: "tile"})
	s2 := k.SrcsetKey("hash123", SrcsetKeyOpts{Class: "narrow"})
	if s1 == s2 {
		t.Error("Different SrcsetKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "host:api.example.com:")

	e := scoped.EntityKey("https://api.example.com/images/42")
	want := "host:api.example.com:" + inner.EntityKey("https://api.example.com/images/42")
	if e != want {
		t.Errorf("EntityKey = %q, want %q", e, want)
	}

	s := scoped.SrcsetKey("hash123", SrcsetKeyOpts{Class: "tile"})
	if s != "host:api.example.com:"+inner.SrcsetKey("hash123", SrcsetKeyOpts{Class: "tile"}) {
		t.Errorf("SrcsetKey not prefixed: %q", s)
	}

	// nil inner falls back to the default keyer
	fallback := NewScopedKeyer(nil, "p:")
	if fallback.EntityKey("u") != "p:"+inner.EntityKey("u") {
		t.Error("nil inner should use the default keyer")
	}
}
