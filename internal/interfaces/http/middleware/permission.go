package middleware

import (
	"net/http"

	"github.com/finops/backend/internal/domain/identity"
	"github.com/finops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// SkipPaths are exempt from role checks
	SkipPaths []string
}

// RequireWriteAccess lets every role read and only writer roles change data.
// It must run after the JWT middleware.
func RequireWriteAccess(cfg PermissionConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if isReadOnlyMethod(c.Request.Method) {
			c.Next()
			return
		}
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		role := identity.Role(GetJWTRole(c))
		if !role.CanWrite() {
			handlePermissionDenied(c, cfg, role)
			return
		}
		c.Next()
	}
}

func isReadOnlyMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// handlePermissionDenied answers 403 FORBIDDEN
func handlePermissionDenied(c *gin.Context, cfg PermissionConfig, role identity.Role) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Permission denied",
			zap.String("user_id", GetJWTUserID(c)),
			zap.String("role", role.String()),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeForbidden,
		"Your role does not allow changes",
		GetRequestID(c),
	))
}
