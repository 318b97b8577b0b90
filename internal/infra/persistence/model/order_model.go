package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. Rows are never deleted.
type OrderModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerEmail     string          `gorm:"type:varchar(255);not null"`
	TenantID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShippingAddressID *uuid.UUID      `gorm:"type:uuid"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status            string          `gorm:"type:varchar(32);not null;index"`
	HeldFrom          *string         `gorm:"type:varchar(32)"`
	TrackingTokenURL  *string         `gorm:"type:text"`
	CreatedAt         time.Time       `gorm:"not null;index"`
	UpdatedAt         time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Position keeps the placement order of items.
type OrderItemModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position       int             `gorm:"not null"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	Quantity       int             `gorm:"not null"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Size           string          `gorm:"type:varchar(20)"`
	Color          string          `gorm:"type:varchar(40)"`
	CustomerNotes  string          `gorm:"type:text"`
	DesignImageRef string          `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
