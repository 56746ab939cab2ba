package api

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// RequestID stamps every inbound request with a correlation id — either
// the caller-supplied X-Request-ID or a freshly generated uuid — and
// threads it through both the response header and the zap logger. This is
// purely connectivity plumbing; it never touches an order id.
func RequestID(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()

		logger.Info("request handled",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// idempotencyEntry caches one previously-served response body and status so
// a retried request with the same key replays it instead of re-executing
// PlaceOrder.
type idempotencyEntry struct {
	status int
	body   []byte
}

// Idempotency replays the cached response for a repeated Idempotency-Key
// header on the wrapped route within ttl, grounded on
// internal/orders/service_core.go's OrderCache pattern (go-cache, process
// memory, no durability — the engine itself carries no idempotency state).
func Idempotency(ttl time.Duration) gin.HandlerFunc {
	store := cache.New(ttl, 2*ttl)

	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" {
			c.Next()
			return
		}

		if cached, ok := store.Get(key); ok {
			entry := cached.(idempotencyEntry)
			c.Data(entry.status, "application/json; charset=utf-8", entry.body)
			c.Abort()
			return
		}

		recorder := &responseRecorder{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = recorder
		c.Next()

		store.Set(key, idempotencyEntry{status: recorder.status, body: recorder.buf.Bytes()}, cache.DefaultExpiration)
	}
}

// responseRecorder tees the response body so Idempotency can cache exactly
// what was written, without buffering the whole request lifecycle.
type responseRecorder struct {
	gin.ResponseWriter
	buf    *bytes.Buffer
	status int
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteString(s string) (int, error) {
	r.buf.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
