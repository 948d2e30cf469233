package cache

import (
	"context"
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetOrEmitCallsEmitOnceOnMiss(t *testing.T) {
	c := openTestCache(t)
	calls := 0
	emit := func() (string, error) {
		calls++
		return "emitted text", nil
	}

	key := Key([]byte(`{"functions":[]}`))
	for i := 0; i < 3; i++ {
		text, err := c.GetOrEmit(context.Background(), key, emit)
		if err != nil {
			t.Fatalf("GetOrEmit: %v", err)
		}
		if text != "emitted text" {
			t.Errorf("GetOrEmit = %q, want %q", text, "emitted text")
		}
	}
	if calls != 1 {
		t.Errorf("emit called %d times, want 1", calls)
	}
}

func TestKeyIsDeterministicAndDistinguishesInput(t *testing.T) {
	a := Key([]byte(`{"functions":[]}`))
	b := Key([]byte(`{"functions":[]}`))
	if a != b {
		t.Errorf("Key is not deterministic: %q != %q", a, b)
	}
	c := Key([]byte(`{"functions":[1]}`))
	if a == c {
		t.Error("Key collided for different input")
	}
}

func TestGetOrEmitPropagatesEmitError(t *testing.T) {
	c := openTestCache(t)
	wantErr := "boom"
	emit := func() (string, error) { return "", errBoom(wantErr) }
	if _, err := c.GetOrEmit(context.Background(), "k", emit); err == nil || err.Error() != wantErr {
		t.Errorf("GetOrEmit error = %v, want %q", err, wantErr)
	}
}

type errBoom string

func (e errBoom) Error() string { return string(e) }
