package util

import "testing"

func TestStorageKey(t *testing.T) {
	if got := StorageKey("", "a.json"); got != "a.json" {
		t.Fatalf("StorageKey without ns = %q", got)
	}
	if got := StorageKey("worms", "w1"); got != "worms:w1" {
		t.Fatalf("StorageKey = %q", got)
	}
}

func TestShortHash(t *testing.T) {
	a, b := ShortHash("k1"), ShortHash("k2")
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("unexpected lengths %d %d", len(a), len(b))
	}
	if a == b {
		t.Fatalf("distinct inputs share a hash prefix")
	}
	if a != ShortHash("k1") {
		t.Fatalf("ShortHash not deterministic")
	}
}
