package http

import (
	"sync/atomic"
	"testing"
)

func TestRateLimiterEnforcesMutationBudget(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()
	metrics := &securityMetrics{}

	for i := 0; i < mutationsPerMinute; i++ {
		if !rl.allow("10.0.0.1", metrics) {
			t.Fatalf("request %d rejected inside the budget", i+1)
		}
	}
	if rl.allow("10.0.0.1", metrics) {
		t.Fatal("request over the per-minute budget should be rejected")
	}
	if hits := atomic.LoadInt64(&metrics.rateLimitHits); hits != 1 {
		t.Errorf("rateLimitHits = %d, want 1", hits)
	}

	// Other clients keep their own budget.
	if !rl.allow("10.0.0.2", metrics) {
		t.Error("a different client should not share the exhausted budget")
	}
}
