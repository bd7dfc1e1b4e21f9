// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/staymetrics/backend/internal/application/usecase/revenue"
	domainerror "github.com/staymetrics/backend/internal/domain/error"
	"github.com/staymetrics/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// TenantIDKey is the context key for the resolved tenant id.
	TenantIDKey ContextKey = "tenant_id"
)

// tenantClaims are the bearer-token claims this service reads. The
// authentication protocol itself is owned by the platform's identity
// service; only the tenant scope matters here.
type tenantClaims struct {
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// TenantMiddleware resolves the tenant context for each request. A request
// without an Authorization header resolves to the documented default
// tenant; a request with an invalid token is rejected.
type TenantMiddleware struct {
	secret []byte
}

// NewTenantMiddleware creates a new tenant middleware instance.
func NewTenantMiddleware(secret string) *TenantMiddleware {
	return &TenantMiddleware{
		secret: []byte(secret),
	}
}

// Resolve returns a Gin middleware handler that attaches the tenant id to
// the request context.
func (m *TenantMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// Explicit, documented fallback: no tenant context means the
			// default tenant, not an error.
			c.Set(string(TenantIDKey), revenue.DefaultTenantID)
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &tenantClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.secret, nil
		})
		if err != nil || !parsed.Valid {
			code := domainerror.ErrCodeInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				code = domainerror.ErrCodeExpiredToken
			}
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(code),
			})
			c.Abort()
			return
		}

		tenantID := claims.TenantID
		if tenantID == "" {
			tenantID = revenue.DefaultTenantID
		}

		c.Set(string(TenantIDKey), tenantID)
		c.Next()
	}
}

// GetTenantIDFromContext extracts the tenant id from the Gin context,
// falling back to the default tenant when resolution never ran.
func GetTenantIDFromContext(c *gin.Context) string {
	tenantID, exists := c.Get(string(TenantIDKey))
	if !exists {
		return revenue.DefaultTenantID
	}
	id, ok := tenantID.(string)
	if !ok || id == "" {
		return revenue.DefaultTenantID
	}
	return id
}
