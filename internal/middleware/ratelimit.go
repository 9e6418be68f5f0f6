package middleware

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/sereneapp/serene/internal/ratelimit"
)

// RateLimitMiddleware creates a rate limiting middleware
func RateLimitMiddleware(limiter *ratelimit.MemoryRateLimiter, name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ratelimit.GetClientIP(r)

			allowed, info := limiter.Allow(clientIP)

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))

			if !allowed {
				statusMsg := "RATE LIMITED"
				if info.Banned {
					statusMsg = "BANNED"
				}
				log.Printf("[RateLimit] Blocked %s request from %s - %s", name, clientIP, statusMsg)

				if info.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%.0f", info.RetryAfter.Seconds()))
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)

				errorMsg := "Too many attempts. Please try again later."
				if info.Banned {
					errorMsg = fmt.Sprintf("Too many failed attempts. Temporarily locked for security. Try again in %d minutes.",
						int(info.RetryAfter.Minutes()))
				}

				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"error":      errorMsg,
					"retryAfter": int(info.RetryAfter.Seconds()),
					"banned":     info.Banned,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuthSuccessMiddleware resets the limiter after a successful authentication
func AuthSuccessMiddleware(limiter *ratelimit.MemoryRateLimiter, name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			if wrapper.statusCode >= 200 && wrapper.statusCode < 300 {
				clientIP := ratelimit.GetClientIP(r)
				limiter.RecordSuccess(clientIP)
				log.Printf("[RateLimit] Reset attempts for %s from %s (successful auth)", name, clientIP)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
