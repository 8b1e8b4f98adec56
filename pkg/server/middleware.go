package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	cnserrors "github.com/mchmarny/basket/pkg/errors"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// chain applies mw to h so that mw[0] is the outermost wrapper.
func chain(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// apiMiddleware is the chain in front of every API route, outermost first.
func (s *Server) apiMiddleware() []Middleware {
	return []Middleware{
		withMetrics,
		withAPIVersion,
		withRequestID,
		withRecovery,
		withRateLimit(s.limiter),
		withAccessLog,
		withBodyLimit(s.config.MaxBodyBytes),
	}
}

// withAPIVersion negotiates the API version and reports it in X-API-Version.
func withAPIVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		version := negotiateAPIVersion(r)
		SetAPIVersionHeader(w, version)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKeyAPIVersion, version)))
	})
}

// withRequestID keeps a caller supplied UUID X-Request-Id or assigns a new one.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKeyRequestID, id)))
	})
}

// withRecovery turns a handler panic into a 500 error response.
func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				panicRecoveries.Inc()
				slog.Error("panic recovered",
					"error", fmt.Sprintf("%v", v),
					"requestID", RequestIDFromContext(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				WriteError(w, r, http.StatusInternalServerError, cnserrors.ErrCodeInternal,
					"Internal server error", true, nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that have used up their token bucket.
func withRateLimit(l *clientLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining := l.allow(clientKey(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(int(l.limit)))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(int(remaining), 0)))

			if !allowed {
				rateLimitRejects.Inc()
				w.Header().Set("Retry-After", "1")
				WriteError(w, r, http.StatusTooManyRequests, cnserrors.ErrCodeRateLimitExceeded,
					"Rate limit exceeded", true, map[string]any{
						"limit": float64(l.limit),
						"burst": l.burst,
					})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// withAccessLog logs each completed request at debug level.
func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		slog.Debug("request served",
			"requestID", RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", rec.Status(),
			"bytes", rec.bytes,
			"duration", time.Since(start).String(),
		)
	})
}

// withBodyLimit caps the request body at n bytes. Zero or less disables it.
func withBodyLimit(n int64) Middleware {
	return func(next http.Handler) http.Handler {
		if n <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
