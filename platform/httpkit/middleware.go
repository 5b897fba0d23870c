// Package httpkit carries the shared HTTP plumbing: request logging,
// security headers, per-IP rate limiting, JWT authentication, and the
// response envelope helpers.
package httpkit

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"crm_leads_backend/platform/config"
	"crm_leads_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Gin context keys set by AuthRequired and read by GetIdentity.
const (
	ContextUserIDKey      = "userID"
	ContextRolesKey       = "roles"
	ContextDisplayNameKey = "displayName"
)

const (
	errMissingToken = "missing token"
	errInvalidToken = "invalid token"
)

// RequestLogger logs every request with latency and outcome.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		path := c.Request.URL.Path

		c.Next()

		elapsed := time.Since(started)
		log.HTTPRequest(c.Request.Method, path, c.Writer.Status(), float64(elapsed.Milliseconds()), c.ClientIP())
	}
}

// SecurityHeaders sets the standard hardening headers on every reply.
// HSTS is sent only on TLS connections.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if c.Request.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	buckets sync.Map // ip -> *rate.Limiter
	rate    rate.Limit
	burst   int
	log     *logger.Logger
}

// NewIPRateLimiter builds a limiter that allows r events per second
// with the given burst, tracked per IP.
func NewIPRateLimiter(r rate.Limit, burst int, log *logger.Logger) *IPRateLimiter {
	return &IPRateLimiter{rate: r, burst: burst, log: log}
}

func (l *IPRateLimiter) bucketFor(ip string) *rate.Limiter {
	if existing, ok := l.buckets.Load(ip); ok {
		return existing.(*rate.Limiter)
	}
	fresh, _ := l.buckets.LoadOrStore(ip, rate.NewLimiter(l.rate, l.burst))
	return fresh.(*rate.Limiter)
}

// RateLimit rejects requests over the per-IP budget with 429.
func (l *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.bucketFor(ip).Allow() {
			if l.log != nil {
				l.log.RateLimitExceeded(ip, c.Request.URL.Path)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// PublicFormRateLimiter throttles the unauthenticated inquiry form.
type PublicFormRateLimiter struct {
	*IPRateLimiter
}

// NewPublicFormRateLimiter allows 10 submissions per minute per IP.
func NewPublicFormRateLimiter(log *logger.Logger) *PublicFormRateLimiter {
	return &PublicFormRateLimiter{IPRateLimiter: NewIPRateLimiter(rate.Limit(10.0/60.0), 10, log)}
}

// AuthRateLimiter throttles login and token refresh.
type AuthRateLimiter struct {
	*IPRateLimiter
}

// NewAuthRateLimiter allows 5 attempts per minute per IP.
func NewAuthRateLimiter(log *logger.Logger) *AuthRateLimiter {
	return &AuthRateLimiter{IPRateLimiter: NewIPRateLimiter(rate.Limit(5.0/60.0), 5, log)}
}

// AuthRequired validates the bearer access token and stores the
// caller's ID, roles, and display name on the context.
func AuthRequired(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, errMissingToken)
			return
		}

		claims, err := verifyAccessToken(raw, cfg)
		if err != nil {
			abortUnauthorized(c, errInvalidToken)
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			abortUnauthorized(c, errInvalidToken)
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextRolesKey, rolesFromClaim(claims["roles"]))
		if name, _ := claims["name"].(string); name != "" {
			c.Set(ContextDisplayNameKey, name)
		}
		c.Next()
	}
}

// RequireRole rejects callers that do not carry the given role with 403.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident := GetIdentity(c); ident.HasRole(role) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// rolesFromClaim copes with both []string (our own tokens) and
// []interface{} (tokens round-tripped through JSON).
func rolesFromClaim(value interface{}) []string {
	roles := make([]string, 0)
	switch typed := value.(type) {
	case []string:
		roles = append(roles, typed...)
	case []interface{}:
		for _, item := range typed {
			if text, ok := item.(string); ok {
				roles = append(roles, text)
			}
		}
	}
	return roles
}

func bearerToken(header string) (string, bool) {
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func verifyAccessToken(raw string, cfg config.JWTConfig) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.GetJWTAccessSecret()), nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.New(errInvalidToken)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New(errInvalidToken)
	}

	// Refresh tokens share the secret layout but carry type=refresh;
	// only access tokens may reach API routes.
	if kind, _ := claims["type"].(string); kind != "access" {
		return nil, errors.New(errInvalidToken)
	}

	return claims, nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
