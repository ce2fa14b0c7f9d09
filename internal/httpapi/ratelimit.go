package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/clinicdesk/booking/pkg/logger"
)

// Throttle limits request rates per client using a token bucket per key.
// It guards the unauthenticated endpoints, login in particular.
type Throttle struct {
	buckets    map[string]*tokenBucket
	bucketsMux sync.RWMutex
	limit      int
	period     time.Duration
}

type tokenBucket struct {
	tokens     int
	lastRefill time.Time
	mutex      sync.Mutex
}

// NewThrottle creates a throttle allowing limit requests per period per client
func NewThrottle(limit int, period time.Duration) *Throttle {
	return &Throttle{
		buckets: make(map[string]*tokenBucket),
		limit:   limit,
		period:  period,
	}
}

// Allow reports whether a request from the given client may proceed
func (t *Throttle) Allow(client string) bool {
	bucket := t.getBucket(client)

	bucket.mutex.Lock()
	defer bucket.mutex.Unlock()

	now := time.Now()
	elapsed := now.Sub(bucket.lastRefill)

	if elapsed >= t.period {
		bucket.tokens = t.limit
		bucket.lastRefill = now
	} else {
		refill := int(elapsed.Nanoseconds() * int64(t.limit) / t.period.Nanoseconds())
		if refill > 0 {
			bucket.tokens = min(bucket.tokens+refill, t.limit)
			bucket.lastRefill = now
		}
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}
	return false
}

func (t *Throttle) getBucket(client string) *tokenBucket {
	t.bucketsMux.RLock()
	bucket, exists := t.buckets[client]
	t.bucketsMux.RUnlock()
	if exists {
		return bucket
	}

	t.bucketsMux.Lock()
	defer t.bucketsMux.Unlock()

	if bucket, exists := t.buckets[client]; exists {
		return bucket
	}

	bucket = &tokenBucket{
		tokens:     t.limit,
		lastRefill: time.Now(),
	}
	t.buckets[client] = bucket
	return bucket
}

// StartCleanup periodically drops buckets idle for over 24 hours
func (t *Throttle) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			t.cleanup()
		}
	}()
}

func (t *Throttle) cleanup() {
	t.bucketsMux.Lock()
	defer t.bucketsMux.Unlock()

	cutoff := time.Now().Add(-24 * time.Hour)
	for client, bucket := range t.buckets {
		bucket.mutex.Lock()
		if bucket.lastRefill.Before(cutoff) {
			delete(t.buckets, client)
		}
		bucket.mutex.Unlock()
	}
}

// ThrottleMiddleware rejects requests over the per-client rate limit
func ThrottleMiddleware(throttle *Throttle, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientKey(r)
			if !throttle.Allow(client) {
				log.WithField("client", client).Warn("Rate limit exceeded")
				WriteJSON(w, http.StatusTooManyRequests, &ErrorResponse{Error: "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller for rate limiting purposes
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
