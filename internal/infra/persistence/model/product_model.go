package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table. List columns are stored as JSON arrays.
type ProductModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	Category        string          `gorm:"type:varchar(100);index"`
	Images          []string        `gorm:"type:jsonb;serializer:json"`
	BasePrice       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AvailableSizes  []string        `gorm:"type:jsonb;serializer:json"`
	AvailableColors []string        `gorm:"type:jsonb;serializer:json"`
	StockQuantity   int             `gorm:"not null;default:0"`
	Active          bool            `gorm:"not null;default:true;index"`
	TenantID        uuid.UUID       `gorm:"type:uuid;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
