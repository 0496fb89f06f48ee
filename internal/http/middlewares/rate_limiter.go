package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "task-board.com/task-board/internal/errors"
)

func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	return rateLimiter(limit, window, time.Now)
}

func rateLimiter(limit int, window time.Duration, now func() time.Time) echo.MiddlewareFunc {
	type bucket struct {
		count int
		start time.Time
	}

	var (
		mu        sync.Mutex
		buckets   = make(map[string]*bucket)
		lastSweep = now()
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			t := now()
			key := c.RealIP()

			mu.Lock()
			if t.Sub(lastSweep) > window {
				for k, b := range buckets {
					if t.Sub(b.start) > window {
						delete(buckets, k)
					}
				}
				lastSweep = t
			}

			b, ok := buckets[key]
			if !ok || t.Sub(b.start) > window {
				b = &bucket{start: t}
				buckets[key] = b
			}

			if b.count >= limit {
				mu.Unlock()
				return apperrors.ErrRateLimited
			}

			b.count++
			mu.Unlock()

			return next(c)
		}
	}
}
