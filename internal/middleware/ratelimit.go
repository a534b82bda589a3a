package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/ratelimit"
)

// NewRateLimiter limits requests per verified user, falling back to the
// remote address for anonymous requests. Over-limit requests get 429 with a
// Retry-After header. Store errors are logged and the request is let through.
func NewRateLimiter(store ratelimit.Store, policy ratelimit.Policy, log *slog.Logger) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(policy.RetryAfter().Seconds()))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + remoteHost(r)
			if id, ok := UserID(r.Context()); ok {
				key = "user:" + id
			}

			allowed, err := store.Allow(r.Context(), key)
			if err != nil {
				log.WarnContext(r.Context(), "rate limiter unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
