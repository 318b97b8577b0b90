package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DesignAssetModel mirrors the 'design_assets' table.
type DesignAssetModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Type            string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_design_assets_type"`
	MockupImageURL  string          `gorm:"type:text"`
	BasePrice       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PrintAreaTop    string          `gorm:"type:varchar(16)"`
	PrintAreaLeft   string          `gorm:"type:varchar(16)"`
	PrintAreaWidth  string          `gorm:"type:varchar(16)"`
	PrintAreaHeight string          `gorm:"type:varchar(16)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (DesignAssetModel) TableName() string {
	return "design_assets"
}
