package handler

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Roles     []string  `json:"roles"`
	TenantID  uuid.UUID `json:"tenantId"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Roles:     u.Roles.ToStrings(),
		TenantID:  u.TenantID,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

type AddressResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	FullName      string    `json:"fullName"`
	StreetAddress string    `json:"streetAddress"`
	AptSuite      string    `json:"aptSuite,omitempty"`
	City          string    `json:"city"`
	State         string    `json:"state,omitempty"`
	PostalCode    string    `json:"postalCode"`
	Country       string    `json:"country"`
	PhoneNumber   string    `json:"phoneNumber"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	IsDefault     bool      `json:"isDefault"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toAddressResponse(a *entity.Address) AddressResponse {
	return AddressResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		FullName:      a.FullName,
		StreetAddress: a.StreetAddress,
		AptSuite:      a.AptSuite,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		PhoneNumber:   a.PhoneNumber,
		Latitude:      a.Latitude,
		Longitude:     a.Longitude,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

type DesignAssetResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	MockupImageURL  string    `json:"mockupImageUrl"`
	BasePrice       string    `json:"basePrice"`
	PrintAreaTop    string    `json:"printAreaTop"`
	PrintAreaLeft   string    `json:"printAreaLeft"`
	PrintAreaWidth  string    `json:"printAreaWidth"`
	PrintAreaHeight string    `json:"printAreaHeight"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toDesignAssetResponse(a *entity.DesignAsset) DesignAssetResponse {
	return DesignAssetResponse{
		ID:              a.ID,
		Name:            a.Name,
		Type:            a.Type,
		MockupImageURL:  a.MockupImageURL,
		BasePrice:       a.BasePrice.StringFixed(entity.MoneyScale),
		PrintAreaTop:    a.PrintArea.Top,
		PrintAreaLeft:   a.PrintArea.Left,
		PrintAreaWidth:  a.PrintArea.Width,
		PrintAreaHeight: a.PrintArea.Height,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

type ProductResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category"`
	Images          []string  `json:"images"`
	BasePrice       string    `json:"basePrice"`
	AvailableSizes  []string  `json:"availableSizes"`
	AvailableColors []string  `json:"availableColors"`
	StockQuantity   int       `json:"stockQuantity"`
	Active          bool      `json:"active"`
	TenantID        uuid.UUID `json:"tenantId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Images:          nonNil(p.Images),
		BasePrice:       p.BasePrice.StringFixed(entity.MoneyScale),
		AvailableSizes:  nonNil(p.AvailableSizes),
		AvailableColors: nonNil(p.AvailableColors),
		StockQuantity:   p.StockQuantity,
		Active:          p.Active,
		TenantID:        p.TenantID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

type OrderItemResponse struct {
	ProductID      uuid.UUID `json:"productId"`
	ProductName    string    `json:"productName"`
	Quantity       int       `json:"quantity"`
	UnitPrice      string    `json:"unitPrice"`
	Subtotal       string    `json:"subtotal"`
	Size           string    `json:"size,omitempty"`
	Color          string    `json:"color,omitempty"`
	CustomerNotes  string    `json:"customerNotes,omitempty"`
	DesignImageRef string    `json:"designImageRef,omitempty"`
}

// OrderResponse renders money as fixed two-decimal strings such as "130.00".
type OrderResponse struct {
	ID                uuid.UUID           `json:"id"`
	CustomerID        uuid.UUID           `json:"customerId"`
	CustomerEmail     string              `json:"customerEmail"`
	TenantID          uuid.UUID           `json:"tenantId"`
	ShippingAddressID *uuid.UUID          `json:"shippingAddressId"`
	Items             []OrderItemResponse `json:"items"`
	TotalAmount       string              `json:"totalAmount"`
	Status            string              `json:"status"`
	HeldFrom          *string             `json:"heldFrom,omitempty"`
	TrackingTokenURL  *string             `json:"trackingTokenUrl"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

func toOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice.StringFixed(entity.MoneyScale),
			Subtotal:       it.Subtotal().StringFixed(entity.MoneyScale),
			Size:           it.Size,
			Color:          it.Color,
			CustomerNotes:  it.CustomerNotes,
			DesignImageRef: it.DesignImageRef,
		})
	}

	var heldFrom *string
	if o.HeldFrom != nil {
		s := o.HeldFrom.String()
		heldFrom = &s
	}

	return OrderResponse{
		ID:                o.ID,
		CustomerID:        o.CustomerID,
		CustomerEmail:     o.CustomerEmail,
		TenantID:          o.TenantID,
		ShippingAddressID: o.ShippingAddressID,
		Items:             items,
		TotalAmount:       o.TotalAmount.StringFixed(entity.MoneyScale),
		Status:            o.Status.String(),
		HeldFrom:          heldFrom,
		TrackingTokenURL:  o.TrackingTokenURL,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func mapAll[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}

	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
