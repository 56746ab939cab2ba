package auth

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

// Middleware bundles bearer-token auth and per-client rate limiting for the
// service adapter's gin routes, grounded on the trading system's
// SecurityMiddleware.
type Middleware struct {
	auth    *Service
	limiter *limiter.Limiter
	logger  *zap.Logger
}

// NewMiddleware builds a Middleware whose rate limiter allows
// requestsPerMinute requests per client per one-minute window, backed by an
// in-memory store (single-process clobd, per spec.md's deployment model).
func NewMiddleware(auth *Service, requestsPerMinute int, logger *zap.Logger) *Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 600
	}

	rate := limiter.Rate{Period: time.Minute, Limit: int64(requestsPerMinute)}
	store := memory.NewStore()

	return &Middleware{
		auth:    auth,
		limiter: limiter.New(store, rate),
		logger:  logger,
	}
}

// RequireBearerToken rejects requests without a valid "Authorization:
// Bearer <token>" header, attaching the parsed Claims to the gin context
// under "claims" for handlers that need the caller's identity.
func (m *Middleware) RequireBearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := m.auth.ValidateToken(token)
		if err != nil {
			m.logger.Warn("rejected bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid bearer token"})
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// RateLimit rejects requests once the caller's remote address exceeds the
// configured rate.
func (m *Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, err := m.limiter.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			m.logger.Error("rate limiter backend error", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))

		if ctx.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
