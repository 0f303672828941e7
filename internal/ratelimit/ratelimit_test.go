package ratelimit

import (
	"errors"
	"testing"
	"time"
)

func TestAllow_UnlimitedByDefault(t *testing.T) {
	l := NewLimiter(Config{})
	for i := 0; i < 100; i++ {
		if err := l.Allow("s1"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
}

func TestAllow_BurstExhaustion(t *testing.T) {
	l := NewLimiter(Config{RunsPerMinute: 1, BurstSize: 3})

	for i := 0; i < 3; i++ {
		if err := l.Allow("s1"); err != nil {
			t.Fatalf("call %d within burst: %v", i, err)
		}
	}
	if err := l.Allow("s1"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("call past burst: err = %v, want ErrRateLimited", err)
	}
}

func TestAllow_BurstDefaultsToRate(t *testing.T) {
	l := NewLimiter(Config{RunsPerMinute: 2})

	if err := l.Allow("s1"); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if err := l.Allow("s1"); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if err := l.Allow("s1"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("third call: err = %v, want ErrRateLimited", err)
	}
}

func TestAllow_SessionsAreIndependent(t *testing.T) {
	l := NewLimiter(Config{RunsPerMinute: 1, BurstSize: 1})

	if err := l.Allow("s1"); err != nil {
		t.Fatalf("s1: %v", err)
	}
	if err := l.Allow("s1"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("s1 second: err = %v, want ErrRateLimited", err)
	}
	// A fresh session still has its own full bucket.
	if err := l.Allow("s2"); err != nil {
		t.Fatalf("s2: %v", err)
	}
}

func TestAllow_RefillsOverTime(t *testing.T) {
	// 100 tokens per second so a short sleep restores the budget.
	l := NewLimiter(Config{RunsPerMinute: 6000, BurstSize: 1})

	if err := l.Allow("s1"); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if err := l.Allow("s1"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("exhausted call: err = %v, want ErrRateLimited", err)
	}

	time.Sleep(50 * time.Millisecond)
	if err := l.Allow("s1"); err != nil {
		t.Fatalf("after refill: %v", err)
	}
}

func TestAllow_RefillCapsAtBurst(t *testing.T) {
	l := NewLimiter(Config{RunsPerMinute: 6000, BurstSize: 2})

	if err := l.Allow("s1"); err != nil {
		t.Fatalf("priming call: %v", err)
	}
	// Plenty of time to refill far beyond the cap.
	time.Sleep(50 * time.Millisecond)

	errs := 0
	for i := 0; i < 5; i++ {
		if err := l.Allow("s1"); err != nil {
			errs++
		}
	}
	// Only the stored burst (2 tokens) plus sub-token refill can pass.
	if errs < 2 {
		t.Errorf("got %d rejections in rapid burst, want at least 2", errs)
	}
}
