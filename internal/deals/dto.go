package deals

import (
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
)

// DefaultImageURL is used when a deal is saved without an image.
const DefaultImageURL = "https://images.pexels.com/photos/264636/pexels-photo-264636.jpeg?auto=compress&cs=tinysrgb&w=400"

// Input is the admin deal form.
type Input struct {
	VendorID    workspace.VendorID
	Brand       string
	ProductName string
	ImageURL    string
	ExpiryDate  string
	MinQuantity int
	RebateText  string
}

// Filter narrows deal listings. Empty fields match everything.
type Filter struct {
	VendorID workspace.VendorID
}

// DealDTO is a deal as seen by the signed-in user.
type DealDTO struct {
	workspace.Deal
	RebatePerCase string `json:"rebate_per_case,omitempty"`
	IsExpired     bool   `json:"is_expired"`
	IsOptedIn     bool   `json:"is_opted_in"`
}

// VendorDealDTO is a row of the vendor dashboard.
type VendorDealDTO struct {
	workspace.Deal
	SignUps    int `json:"sign_ups"`
	TotalCases int `json:"total_cases"`
}
