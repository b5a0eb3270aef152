package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Subject       string
	Email         string
	EmailVerified bool
	Role          string
	JTI           string
}

// AccessTokenClaims represents the typed JWT presented by the admin console.
type AccessTokenClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Role          string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IsAdminFor reports whether the claims grant admin access. A verified email
// is always required; the role claim or the configured allow-list email
// grants the rest.
func (c *AccessTokenClaims) IsAdminFor(allowedEmail string) bool {
	if c == nil || c.Email == "" || !c.EmailVerified {
		return false
	}
	if c.Role == RoleAdmin {
		return true
	}
	return allowedEmail != "" && strings.EqualFold(c.Email, allowedEmail)
}
