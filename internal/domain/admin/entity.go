// internal/domain/admin/entity.go
package admin

import "time"

// Role of an administrator account.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
)

// PermissionAll inside a profile's permission set grants every resource.
const PermissionAll = "all"

// Profile is the authenticated principal.
type Profile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Position    string    `json:"position,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	Role        Role      `json:"role"`
	Permissions []string  `json:"permissions"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	LastLogin   time.Time `json:"last_login,omitempty"`
}

// CanAccess reports whether the profile may access the named resource.
// Super admins bypass the permission set entirely; otherwise the set must
// contain the resource tag or the "all" grant.
func (p *Profile) CanAccess(resource string) bool {
	if p.Role == RoleSuperAdmin {
		return true
	}
	for _, perm := range p.Permissions {
		if perm == resource || perm == PermissionAll {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can never mutate stored state.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Permissions = append([]string(nil), p.Permissions...)
	return &cp
}
