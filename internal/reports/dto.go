package reports

import (
	"time"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	"github.com/google/uuid"
)

// Filter narrows report rows. Date is an exact calendar day; From and To
// form an inclusive day range. All days are YYYY-MM-DD in the report timezone.
type Filter struct {
	VendorID workspace.VendorID
	StoreID  workspace.StoreID
	GroupID  workspace.GroupID
	Date     string
	From     string
	To       string
}

// Row is one opt-in joined with its deal, store and group.
type Row struct {
	OptInID   uuid.UUID          `json:"optin_id"`
	DealID    workspace.DealID   `json:"deal_id"`
	Deal      string             `json:"deal"`
	StoreID   workspace.StoreID  `json:"store_id"`
	Store     string             `json:"store"`
	VendorID  workspace.VendorID `json:"vendor_id"`
	Vendor    string             `json:"vendor"`
	GroupID   workspace.GroupID  `json:"group_id,omitempty"`
	Group     string             `json:"group"`
	UserID    workspace.UserID   `json:"user_id"`
	CaseCount int                `json:"case_count"`
	IsGuest   bool               `json:"is_guest"`
	Timestamp time.Time          `json:"timestamp"`
}

type RowPage struct {
	Rows       []Row  `json:"rows"`
	NextCursor string `json:"next_cursor,omitempty"`
}

type VendorStats struct {
	VendorID        workspace.VendorID `json:"vendor_id"`
	VendorName      string             `json:"vendor_name"`
	OptIns          int                `json:"opt_ins"`
	TotalCases      int                `json:"total_cases"`
	EstimatedRebate string             `json:"estimated_rebate"`
}

type ProductStats struct {
	DealID      workspace.DealID `json:"deal_id"`
	ProductName string           `json:"product_name"`
	Brand       string           `json:"brand"`
	VendorName  string           `json:"vendor_name"`
	OptIns      int              `json:"opt_ins"`
	TotalCases  int              `json:"total_cases"`
}

type Analytics struct {
	TotalOptIns       int            `json:"total_opt_ins"`
	TotalGuests       int            `json:"total_guests"`
	TotalMembers      int            `json:"total_members"`
	TotalVendors      int            `json:"total_vendors"`
	TotalCases        int            `json:"total_cases"`
	EstimatedRebate   string         `json:"estimated_rebate"`
	VendorPerformance []VendorStats  `json:"vendor_performance"`
	TopProducts       []ProductStats `json:"top_products"`
}
