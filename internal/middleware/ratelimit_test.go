package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	config := RateLimiterConfig{
		RequestsPerSecond: 2.0,
		BurstSize:         3,
		CleanupInterval:   1 * time.Minute,
	}

	rl := NewRateLimiter(config)
	defer rl.Stop()

	clientID := "test-client-1"

	// First 3 requests should succeed (burst)
	for i := 0; i < 3; i++ {
		if !rl.Allow(clientID) {
			t.Errorf("Request %d should be allowed (within burst)", i+1)
		}
	}

	// 4th request should fail (burst exhausted)
	if rl.Allow(clientID) {
		t.Error("Request 4 should be denied (burst exhausted)")
	}

	// Wait for tokens to refill (500ms = 1 token at 2/sec)
	time.Sleep(550 * time.Millisecond)

	if !rl.Allow(clientID) {
		t.Error("Request should be allowed after token refill")
	}
}

func TestRateLimiter_DifferentClients(t *testing.T) {
	config := RateLimiterConfig{
		RequestsPerSecond: 1.0,
		BurstSize:         2,
		CleanupInterval:   1 * time.Minute,
	}

	rl := NewRateLimiter(config)
	defer rl.Stop()

	// Each client gets its own bucket.
	for _, clientID := range []string{"client-a", "client-b"} {
		for i := 0; i < 2; i++ {
			if !rl.Allow(clientID) {
				t.Errorf("Request %d for %s should be allowed", i+1, clientID)
			}
		}
		if rl.Allow(clientID) {
			t.Errorf("Burst for %s should be exhausted", clientID)
		}
	}

	if rl.LimiterCount() != 2 {
		t.Errorf("Expected 2 tracked clients, got %d", rl.LimiterCount())
	}
}

func TestMessageLimiter(t *testing.T) {
	ml := NewMessageLimiter()
	defer ml.Stop()

	allowed := 0
	for i := 0; i < 20; i++ {
		if ml.AllowMessage("ws-client") {
			allowed++
		}
	}
	if allowed != 10 {
		t.Errorf("Expected the burst of 10 messages, got %d", allowed)
	}
}
