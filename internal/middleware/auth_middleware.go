// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"errors"
	"strings"

	"gracehub-service/internal/domain/admin"
	xerrors "gracehub-service/internal/pkg/errors"
	"gracehub-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// TokenVerifier resolves a bearer token to the current admin profile.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, accessToken string) (*admin.Profile, error)
}

// Auth validates the bearer token and stashes the admin identity on the
// request context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			response.Unauthorized(c, "Missing or malformed authorization header")
			return
		}

		profile, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, xerrors.ErrAccountInactive) {
				response.Forbidden(c, "Account is inactive")
				return
			}
			response.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("admin_id", profile.ID)
		c.Set("admin_role", string(profile.Role))
		c.Set("admin_permissions", profile.Permissions)
		c.Set("admin_profile", profile)

		c.Next()
	}
}

// RequirePermission gates a route group on one permission tag. Super admins
// bypass the check; the "all" grant admits everything.
func RequirePermission(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := CurrentAdmin(c)
		if profile == nil {
			response.Unauthorized(c, "Authentication required")
			return
		}

		if !profile.CanAccess(resource) {
			response.Forbidden(c, "You do not have permission to access this resource")
			return
		}

		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		// Websocket upgrades can't set headers from browsers; allow query.
		return c.Query("token")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
