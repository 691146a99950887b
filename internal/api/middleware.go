package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/optimuscode/optimus/pkg/models"
)

// submissionLimiter is a token bucket keyed by client IP *and* language, so a
// client hammering one busy queue (e.g. python) doesn't also throttle its
// submissions to every other language. Grounded on the teacher's
// internal/api.RateLimiter bucket-refill mechanics, rekeyed around spec.md
// §4.4's per-language queue model instead of a single bucket per client.
type submissionLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

func newSubmissionLimiter(rate int, window time.Duration) *submissionLimiter {
	rl := &submissionLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
	}
	go rl.cleanup()
	return rl
}

func (rl *submissionLimiter) allow(ip string, language models.Language) bool {
	key := ip + "|" + string(language)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[key]
	if !exists {
		b = &bucket{tokens: rl.rate, lastRefill: time.Now()}
		rl.buckets[key] = b
	}

	now := time.Now()
	if now.Sub(b.lastRefill) >= rl.window {
		b.tokens = rl.rate
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

func (rl *submissionLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, b := range rl.buckets {
			if now.Sub(b.lastRefill) > 10*time.Minute {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

// submissionRateLimitMiddleware peeks the submission body for its language
// tag without consuming it — the body is replaced so handleSubmit's own
// c.Bind still sees the full payload, including any validation errors a
// malformed body should surface there rather than here.
func submissionRateLimitMiddleware(rl *submissionLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			body, err := io.ReadAll(c.Request().Body)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
			}
			c.Request().Body = io.NopCloser(bytes.NewReader(body))

			var peek struct {
				Language models.Language `json:"language"`
			}
			_ = json.Unmarshal(body, &peek)

			if !rl.allow(c.RealIP(), peek.Language) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded for this language")
			}
			return next(c)
		}
	}
}
