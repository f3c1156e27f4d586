package models

import (
	"time"

	dbtypes "github.com/angelmondragon/hra-tradeshow-backend/pkg/db/types"
)

// User is a pre-provisioned login identity offered on the sign-in screen.
type User struct {
	ID        string            `gorm:"column:id;primaryKey"`
	Name      string            `gorm:"column:name;not null"`
	Email     string            `gorm:"column:email;not null;uniqueIndex"`
	Role      string            `gorm:"column:role;not null"`
	StoreIDs  dbtypes.TextArray `gorm:"column:store_ids;not null"`
	Address   string            `gorm:"column:address;not null;default:''"`
	VendorID  *string           `gorm:"column:vendor_id"`
	Position  int               `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string { return "test_users" }
