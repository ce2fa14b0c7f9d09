package httpapi

import (
	"testing"
	"time"
)

func TestThrottle_Allow(t *testing.T) {
	limit := 5
	throttle := NewThrottle(limit, time.Second)

	client := "10.0.0.1"

	for i := 0; i < limit; i++ {
		if !throttle.Allow(client) {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	if throttle.Allow(client) {
		t.Error("Request should be denied after exceeding limit")
	}
}

func TestThrottle_Allow_DifferentClients(t *testing.T) {
	limit := 3
	throttle := NewThrottle(limit, time.Second)

	for i := 0; i < limit; i++ {
		if !throttle.Allow("10.0.0.1") {
			t.Errorf("Request %d for first client should be allowed", i+1)
		}
	}

	if throttle.Allow("10.0.0.1") {
		t.Error("First client should be denied after exceeding limit")
	}

	if !throttle.Allow("10.0.0.2") {
		t.Error("Second client should still be allowed")
	}
}

func TestThrottle_Allow_TokenRefill(t *testing.T) {
	limit := 2
	throttle := NewThrottle(limit, 100*time.Millisecond)

	client := "10.0.0.1"

	for i := 0; i < limit; i++ {
		if !throttle.Allow(client) {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	if throttle.Allow(client) {
		t.Error("Request should be denied after exhausting tokens")
	}

	time.Sleep(150 * time.Millisecond)

	if !throttle.Allow(client) {
		t.Error("Request should be allowed after refill period")
	}
}
