package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDesignAssetType(t *testing.T) {
	assert.Equal(t, "classic-t-shirt", DesignAssetType("  Classic \tT-Shirt "))
	assert.Equal(t, "hoodie", DesignAssetType("Hoodie"))
	assert.Empty(t, DesignAssetType("   "))
}

func TestPrintArea_Valid(t *testing.T) {
	tests := []struct {
		name string
		area PrintArea
		want bool
	}{
		{name: "percentages", area: PrintArea{Top: "20%", Left: "32.5%", Width: "36%", Height: "40%"}, want: true},
		{name: "bounds", area: PrintArea{Top: "0%", Left: "0%", Width: "100%", Height: "100%"}, want: true},
		{name: "missing unit", area: PrintArea{Top: "20", Left: "32%", Width: "36%", Height: "40%"}},
		{name: "empty edge", area: PrintArea{Top: "20%", Left: "32%", Width: "36%"}},
		{name: "over 100", area: PrintArea{Top: "20%", Left: "32%", Width: "136%", Height: "40%"}},
		{name: "negative", area: PrintArea{Top: "-1%", Left: "32%", Width: "36%", Height: "40%"}},
		{name: "pixels", area: PrintArea{Top: "20px", Left: "32%", Width: "36%", Height: "40%"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.area.Valid())
		})
	}
}

func TestDefaultDesignAssets(t *testing.T) {
	assets := DefaultDesignAssets()
	assert.Len(t, assets, 2)
	for _, a := range assets {
		assert.NotEmpty(t, a.Type)
		assert.True(t, a.PrintArea.Valid(), a.Name)
		assert.True(t, a.BasePrice.IsPositive(), a.Name)
	}
}
