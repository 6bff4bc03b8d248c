package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/product-catalog/api/pkg/response"
)

// RateLimit applies a fixed-window per-IP limit: max requests per window.
// Counters for idle IPs are dropped when their window expires.
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	type bucket struct {
		count   int
		resetAt time.Time
	}

	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			now := time.Now()

			mu.Lock()
			b, ok := buckets[ip]
			if !ok || now.After(b.resetAt) {
				b = &bucket{resetAt: now.Add(window)}
				buckets[ip] = b
				// opportunistic cleanup of expired buckets
				for k, v := range buckets {
					if now.After(v.resetAt) {
						delete(buckets, k)
					}
				}
			}
			b.count++
			over := b.count > max
			mu.Unlock()

			if over {
				response.Error(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
