package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	key := Key("classify", "title", "summary")
	c.Set(key, "VIP")

	got, ok := c.Get(key)
	if !ok || got != "VIP" {
		t.Fatalf("expected cached value, got %q ok=%v", got, ok)
	}
}

func TestExpiry(t *testing.T) {
	t.Parallel()

	c := New(-time.Second) // already expired
	c.Set("k", "v")
	if _, ok := c.Get("k"); ok {
		t.Fatal("expired value must not be returned")
	}
}

func TestKeyDistinguishesKindAndParts(t *testing.T) {
	t.Parallel()

	if Key("classify", "a", "b") == Key("duplicate", "a", "b") {
		t.Error("same inputs for different kinds must not collide")
	}
	if Key("classify", "ab") == Key("classify", "a", "b") {
		t.Error("part boundaries must matter")
	}
}
