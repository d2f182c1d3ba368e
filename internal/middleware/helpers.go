// internal/middleware/helpers.go
package middleware

import (
	"gracehub-service/internal/domain/admin"

	"github.com/gin-gonic/gin"
)

// CurrentAdmin returns the authenticated admin profile set by Auth, or nil.
func CurrentAdmin(c *gin.Context) *admin.Profile {
	v, ok := c.Get("admin_profile")
	if !ok {
		return nil
	}
	profile, ok := v.(*admin.Profile)
	if !ok {
		return nil
	}
	return profile
}

// CurrentAdminID returns the authenticated admin's ID, or "".
func CurrentAdminID(c *gin.Context) string {
	return c.GetString("admin_id")
}
