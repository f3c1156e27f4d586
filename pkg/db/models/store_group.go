package models

import (
	"time"

	dbtypes "github.com/angelmondragon/hra-tradeshow-backend/pkg/db/types"
)

type StoreGroup struct {
	ID            string            `gorm:"column:id;primaryKey"`
	ParentStoreID string            `gorm:"column:parent_store_id;not null"`
	ChildStoreIDs dbtypes.TextArray `gorm:"column:child_store_ids;not null"`
	Position      int               `gorm:"column:position;not null;default:0"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
}

func (StoreGroup) TableName() string { return "store_groups" }
