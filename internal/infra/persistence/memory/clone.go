package memory

import (
	"slices"

	"storefront/internal/domain/entity"
)

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u

	return &c
}

func cloneAddress(a *entity.Address) *entity.Address {
	if a == nil {
		return nil
	}
	c := *a
	if a.Latitude != nil {
		lat := *a.Latitude
		c.Latitude = &lat
	}
	if a.Longitude != nil {
		lng := *a.Longitude
		c.Longitude = &lng
	}

	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Images = slices.Clone(p.Images)
	c.AvailableSizes = slices.Clone(p.AvailableSizes)
	c.AvailableColors = slices.Clone(p.AvailableColors)

	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = slices.Clone(o.Items)
	if o.ShippingAddressID != nil {
		id := *o.ShippingAddressID
		c.ShippingAddressID = &id
	}
	if o.HeldFrom != nil {
		heldFrom := *o.HeldFrom
		c.HeldFrom = &heldFrom
	}
	if o.TrackingTokenURL != nil {
		url := *o.TrackingTokenURL
		c.TrackingTokenURL = &url
	}

	return &c
}

func cloneDesignAsset(a *entity.DesignAsset) *entity.DesignAsset {
	if a == nil {
		return nil
	}
	c := *a

	return &c
}
