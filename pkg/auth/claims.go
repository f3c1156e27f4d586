package auth

import (
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload is what a login knows about the caller. SessionID
// becomes the jti, which keys both the refresh token and the session
// workspace; an empty one is generated.
type AccessTokenPayload struct {
	UserID    string
	SessionID string
	Role      enums.UserRole
	VendorID  string
}

type AccessTokenClaims struct {
	UserID   string         `json:"user_id"`
	Role     enums.UserRole `json:"role"`
	VendorID string         `json:"vendor_id,omitempty"`
	jwt.RegisteredClaims
}

func (c *AccessTokenClaims) SessionID() string {
	return c.ID
}

// IsVendor reports whether the token carries a vendor identity usable for
// vendor-scoped routes.
func (c *AccessTokenClaims) IsVendor() bool {
	return c.Role == enums.UserRoleVendor && c.VendorID != ""
}
