package ratelimiter

import (
	"testing"
	"time"
)

func TestFixedWindowLimiter(t *testing.T) {
	rl := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if ok, _ := rl.Allow("10.0.0.1"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, retry := rl.Allow("10.0.0.1")
	if ok {
		t.Error("fourth request should be throttled")
	}
	if retry <= 0 || retry > time.Minute {
		t.Errorf("retry-after = %v", retry)
	}

	// Other clients are counted separately.
	if ok, _ := rl.Allow("10.0.0.2"); !ok {
		t.Error("different IP should be allowed")
	}
}

func TestFixedWindowLimiterReset(t *testing.T) {
	rl := NewFixedWindowLimiter(1, 10*time.Millisecond)

	if ok, _ := rl.Allow("10.0.0.1"); !ok {
		t.Fatal("first request should be allowed")
	}
	if ok, _ := rl.Allow("10.0.0.1"); ok {
		t.Fatal("second request should be throttled")
	}

	time.Sleep(15 * time.Millisecond)
	if ok, _ := rl.Allow("10.0.0.1"); !ok {
		t.Error("request after window rollover should be allowed")
	}
}
