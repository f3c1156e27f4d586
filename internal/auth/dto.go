package auth

import (
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/enums"
)

// LoginRequest either names a seeded test identity or declares a new one.
// When TestUserID is set the remaining fields are ignored.
type LoginRequest struct {
	TestUserID string `json:"test_user_id" validate:"omitempty,max=64"`
	Name       string `json:"name" validate:"omitempty,max=120"`
	Email      string `json:"email" validate:"omitempty,email"`
	Role       string `json:"role" validate:"omitempty,max=16"`
	StoreID    string `json:"store_id" validate:"omitempty,max=64"`
	VendorID   string `json:"vendor_id" validate:"omitempty,max=64"`
	Address    string `json:"address" validate:"omitempty,max=255"`
}

// LoginResponse contains the tokens, user, and dashboard produced by a successful login.
type LoginResponse struct {
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	User         workspace.User      `json:"user"`
	View         enums.DashboardView `json:"view"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TestUserDTO is what the sign-in screen lists as one-click identities.
type TestUserDTO struct {
	ID    workspace.UserID `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Role  enums.UserRole   `json:"role"`
	Label string           `json:"label"`
}
