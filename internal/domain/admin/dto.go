// internal/domain/admin/dto.go
package admin

// Credentials for admin login
type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenPair is an access/refresh token couple. Both fields are always
// present together; a pair missing either half is treated as no session.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Valid reports whether both halves of the pair are present.
func (p TokenPair) Valid() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

// AuthGrant is what a successful login or refresh yields.
type AuthGrant struct {
	Admin        *Profile  `json:"admin"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
}

// Pair returns the grant's token pair.
func (g *AuthGrant) Pair() TokenPair {
	return TokenPair{AccessToken: g.AccessToken, RefreshToken: g.RefreshToken}
}

// UpdateProfileRequest for profile updates. The server's returned copy is
// authoritative; empty fields are left unchanged.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
	Avatar   string `json:"avatar"`
}

// ChangePasswordRequest for password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// RefreshRequest carries the refresh token to mint a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest carries the refresh token to revoke server-side.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}
