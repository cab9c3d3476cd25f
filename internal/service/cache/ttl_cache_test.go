package cache

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache()

	if err := c.SetBytes("insight:overrun:p1", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("SetBytes: %v", err)
	}

	b, ok, err := c.GetBytes("insight:overrun:p1")
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if string(b) != "payload" {
		t.Fatalf("got %q", b)
	}
}

func TestTTLCacheMiss(t *testing.T) {
	c := NewTTLCache()
	_, ok, err := c.GetBytes("missing")
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache()
	if err := c.SetBytes("k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("SetBytes: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, ok, _ := c.GetBytes("k")
	if ok {
		t.Fatal("expected entry to expire")
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache()
	if err := c.SetBytes("k", []byte("v"), 0); err != nil {
		t.Fatalf("SetBytes: %v", err)
	}
	time.Sleep(2 * time.Millisecond)

	_, ok, _ := c.GetBytes("k")
	if !ok {
		t.Fatal("zero TTL entry should not expire")
	}
}

func TestTTLCacheDeletePrefix(t *testing.T) {
	c := NewTTLCache()
	_ = c.SetBytes("insight:overrun:p1", []byte("a"), time.Minute)
	_ = c.SetBytes("insight:overrun:p2", []byte("b"), time.Minute)
	_ = c.SetBytes("insight:cashflow", []byte("c"), time.Minute)

	if err := c.DeletePrefix("insight:overrun:"); err != nil {
		t.Fatalf("DeletePrefix: %v", err)
	}

	if _, ok, _ := c.GetBytes("insight:overrun:p1"); ok {
		t.Fatal("p1 should be gone")
	}
	if _, ok, _ := c.GetBytes("insight:overrun:p2"); ok {
		t.Fatal("p2 should be gone")
	}
	if _, ok, _ := c.GetBytes("insight:cashflow"); !ok {
		t.Fatal("cashflow should survive")
	}
}
