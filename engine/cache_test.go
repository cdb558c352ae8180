package engine

import (
	"testing"
)

func TestCacheKey_OrderInsensitive(t *testing.T) {
	a := CacheKey(cards(t, "As", "Kd"), cards(t, "2c", "7h", "Jd"), 2, nil, 10_000)
	b := CacheKey(cards(t, "Kd", "As"), cards(t, "Jd", "2c", "7h"), 2, nil, 10_000)
	if a != b {
		t.Errorf("card order changed the key: %q vs %q", a, b)
	}
}

func TestCacheKey_Distinguishes(t *testing.T) {
	hole := cards(t, "As", "Kd")
	board := cards(t, "2c", "7h", "Jd")
	seed := int64(5)

	base := CacheKey(hole, board, 2, nil, 10_000)
	if CacheKey(hole, board, 3, nil, 10_000) == base {
		t.Error("opponent count should change the key")
	}
	if CacheKey(hole, board, 2, &seed, 10_000) == base {
		t.Error("seed should change the key")
	}
	if CacheKey(hole, cards(t, "2c", "7h", "Qd"), 2, nil, 10_000) == base {
		t.Error("board should change the key")
	}
	if CacheKey(hole, board, 2, nil, 50_000) == base {
		t.Error("sample count should change the key")
	}
}
