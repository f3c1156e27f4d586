package workspace

import (
	"time"

	"github.com/angelmondragon/hra-tradeshow-backend/pkg/enums"
	"github.com/google/uuid"
)

// Unknown is displayed wherever a referenced entity cannot be resolved.
const Unknown = "Unknown"

// Store is a retail location. ParentStoreID anchors it to a group parent and
// equals ID for the parent itself.
type Store struct {
	ID            StoreID `json:"id"`
	Name          string  `json:"name"`
	OwnerID       UserID  `json:"owner_id"`
	ParentStoreID StoreID `json:"parent_store_id,omitempty"`
}

type StoreGroup struct {
	ID            GroupID   `json:"group_id"`
	ParentStoreID StoreID   `json:"parent_store_id"`
	ChildStoreIDs []StoreID `json:"child_store_ids"`
}

// Contains reports whether the store is the parent or one of the children.
func (g StoreGroup) Contains(id StoreID) bool {
	if g.ParentStoreID == id {
		return true
	}
	for _, child := range g.ChildStoreIDs {
		if child == id {
			return true
		}
	}
	return false
}

type Vendor struct {
	ID          VendorID `json:"id"`
	Name        string   `json:"name"`
	ContactInfo string   `json:"contact_info"`
}

// Deal is a vendor rebate offer. ExpiryDate is a calendar day (YYYY-MM-DD)
// and VendorName is copied from the vendor when the deal is saved.
type Deal struct {
	ID          DealID   `json:"id"`
	VendorID    VendorID `json:"vendor_id"`
	Brand       string   `json:"brand"`
	ProductName string   `json:"product_name"`
	ImageURL    string   `json:"image_url"`
	ExpiryDate  string   `json:"expiry_date"`
	MinQuantity int      `json:"min_quantity"`
	RebateText  string   `json:"rebate_text"`
	VendorName  string   `json:"vendor_name"`
}

// User is the signed-in identity. Only members own StoreIDs; a guest's
// DeclaredStoreID is the store typed at login.
type User struct {
	ID              UserID         `json:"id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Role            enums.UserRole `json:"role"`
	StoreIDs        []StoreID      `json:"store_ids"`
	Address         string         `json:"address"`
	DeclaredStoreID StoreID        `json:"declared_store_id,omitempty"`
	VendorID        VendorID       `json:"vendor_id,omitempty"`
}

// PrimaryStore returns storeIds[0].
func (u User) PrimaryStore() (StoreID, bool) {
	if len(u.StoreIDs) == 0 {
		return "", false
	}
	return u.StoreIDs[0], true
}

// OwnsStore reports whether id is one of the user's stores.
func (u User) OwnsStore(id StoreID) bool {
	for _, s := range u.StoreIDs {
		if s == id {
			return true
		}
	}
	return false
}

type Guest struct {
	ID             UserID   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Address        string   `json:"address"`
	OptedInDealIDs []DealID `json:"opted_in_deal_ids"`
}

// OptIn is append-only: created once, never mutated or deleted.
type OptIn struct {
	ID        uuid.UUID `json:"id"`
	DealID    DealID    `json:"deal_id"`
	StoreID   StoreID   `json:"store_id"`
	UserID    UserID    `json:"user_id"`
	CaseCount int       `json:"case_count"`
	Timestamp time.Time `json:"timestamp"`
	IsGuest   bool      `json:"is_guest"`
}
