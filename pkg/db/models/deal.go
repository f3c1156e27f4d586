package models

import "time"

// Deal is a vendor rebate offer. ExpiryDate is stored as YYYY-MM-DD text.
type Deal struct {
	ID          string    `gorm:"column:id;primaryKey"`
	VendorID    string    `gorm:"column:vendor_id;not null"`
	Brand       string    `gorm:"column:brand;not null"`
	ProductName string    `gorm:"column:product_name;not null"`
	ImageURL    string    `gorm:"column:image_url;not null;default:''"`
	ExpiryDate  string    `gorm:"column:expiry_date;not null"`
	MinQuantity int       `gorm:"column:min_quantity;not null"`
	RebateText  string    `gorm:"column:rebate_text;not null"`
	Position    int       `gorm:"column:position;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Deal) TableName() string { return "deals" }
