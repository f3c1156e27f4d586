package models

import "time"

type Vendor struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	ContactInfo string    `gorm:"column:contact_info;not null;default:''"`
	Position    int       `gorm:"column:position;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Vendor) TableName() string { return "vendors" }
