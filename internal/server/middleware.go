package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	headerRequestID  = "X-Request-ID"
	contextUserIDKey = "user_id"
)

// RequestID propagates the inbound request id or mints one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(headerRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(headerRequestID, rid)
		c.Set("request_id", rid)
		c.Next()
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}

// Identity decodes the bearer token when present and stashes the numeric
// user id on the context. A missing or invalid token just means anonymous;
// endpoints that need a user enforce it with requireIdentity.
func (s *Server) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" || !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			c.Next()
			return
		}

		tokenStr := strings.TrimSpace(raw[len("bearer "):])
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.cfg.AuthJWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		if uid, ok := claims["user_id"].(float64); ok && uid > 0 {
			c.Set(contextUserIDKey, int64(uid))
		}
		c.Next()
	}
}

// actingUserID returns the authenticated user's numeric id, or nil for
// anonymous callers.
func actingUserID(c *gin.Context) *int64 {
	v, ok := c.Get(contextUserIDKey)
	if !ok {
		return nil
	}
	uid, ok := v.(int64)
	if !ok {
		return nil
	}
	return &uid
}

func requireIdentity(c *gin.Context) (*int64, bool) {
	uid := actingUserID(c)
	if uid == nil {
		AbortWithError(c, ErrUnauthenticated)
		return nil, false
	}
	return uid, true
}
