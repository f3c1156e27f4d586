package models

import "time"

// Store is a retail location row. ParentStoreID is empty for stores outside a group.
type Store struct {
	ID            string    `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	OwnerID       string    `gorm:"column:owner_id;not null"`
	ParentStoreID *string   `gorm:"column:parent_store_id"`
	Position      int       `gorm:"column:position;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Store) TableName() string { return "stores" }
