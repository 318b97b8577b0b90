package entity

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PrintArea places the printable overlay on a mockup image. Each value is a
// CSS percentage such as "20%".
type PrintArea struct {
	Top    string
	Left   string
	Width  string
	Height string
}

// Valid reports whether every edge is a percentage between 0% and 100%.
func (a PrintArea) Valid() bool {
	for _, v := range []string{a.Top, a.Left, a.Width, a.Height} {
		if !isPercentage(v) {
			return false
		}
	}

	return true
}

func isPercentage(v string) bool {
	number, found := strings.CutSuffix(v, "%")
	if !found || number == "" {
		return false
	}
	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return false
	}

	return f >= 0 && f <= 100
}

// DesignAsset configures one garment of the design studio: its mockup, print
// area and starting price.
type DesignAsset struct {
	ID             uuid.UUID
	Name           string
	Type           string // Unique key such as "tshirt".
	MockupImageURL string
	BasePrice      decimal.Decimal
	PrintArea      PrintArea
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DesignAssetType derives the asset key from its display name: lower case
// with whitespace runs replaced by a dash.
func DesignAssetType(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// DefaultDesignAssets returns the garments a fresh catalog starts with.
func DefaultDesignAssets() []*DesignAsset {
	return []*DesignAsset{
		{
			Name:           "T-Shirt",
			Type:           "tshirt",
			MockupImageURL: "/mockup-tshirt.png",
			BasePrice:      decimal.RequireFromString("500.00"),
			PrintArea:      PrintArea{Top: "20%", Left: "32%", Width: "36%", Height: "40%"},
		},
		{
			Name:           "Hoodie",
			Type:           "hoodie",
			MockupImageURL: "/mockup-hoodie.png",
			BasePrice:      decimal.RequireFromString("950.00"),
			PrintArea:      PrintArea{Top: "30%", Left: "35%", Width: "30%", Height: "25%"},
		},
	}
}
