package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel is the GORM-specific struct for the 'addresses' table.
// A partial unique index on (user_id) WHERE is_default AND active backs the single-default rule.
type AddressModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_addresses_on_user"`
	FullName      string    `gorm:"type:varchar(200);not null"`
	StreetAddress string    `gorm:"type:varchar(255);not null"`
	AptSuite      string    `gorm:"type:varchar(100)"`
	City          string    `gorm:"type:varchar(100);not null"`
	State         string    `gorm:"type:varchar(100)"`
	PostalCode    string    `gorm:"type:varchar(20);not null"`
	Country       string    `gorm:"type:varchar(100);not null"`
	PhoneNumber   string    `gorm:"type:varchar(30);not null"`
	Latitude      *float64  `gorm:"type:decimal(10,8)"`
	Longitude     *float64  `gorm:"type:decimal(11,8)"`
	IsDefault     bool      `gorm:"not null;default:false"`
	Active        bool      `gorm:"not null;default:true;index:idx_addresses_on_user"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
