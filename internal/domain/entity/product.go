package entity

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item orders are priced from.
type Product struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Category        string
	Images          []string
	BasePrice       decimal.Decimal
	AvailableSizes  []string
	AvailableColors []string
	StockQuantity   int
	Active          bool
	TenantID        uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OffersSize reports whether size may be ordered. An empty list accepts any size.
func (p *Product) OffersSize(size string) bool {
	return acceptsOption(p.AvailableSizes, size)
}

// OffersColor reports whether color may be ordered. An empty list accepts any color.
func (p *Product) OffersColor(color string) bool {
	return acceptsOption(p.AvailableColors, color)
}

func acceptsOption(options []string, value string) bool {
	if len(options) == 0 || value == "" {
		return true
	}

	return slices.ContainsFunc(options, func(o string) bool {
		return strings.EqualFold(o, value)
	})
}
