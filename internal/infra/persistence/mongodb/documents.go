package mongodb

import (
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names.
const (
	usersCollection        = "users"
	addressesCollection    = "addresses"
	productsCollection     = "products"
	ordersCollection       = "orders"
	designAssetsCollection = "design_assets"
)

type userDocument struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	FirstName    string    `bson:"firstName"`
	LastName     string    `bson:"lastName"`
	Roles        []string  `bson:"roles"`
	TenantID     string    `bson:"tenantId"`
	Active       bool      `bson:"active"`
	LockVersion  int64     `bson:"lockVersion"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

type addressDocument struct {
	ID            string    `bson:"_id"`
	UserID        string    `bson:"userId"`
	FullName      string    `bson:"fullName"`
	StreetAddress string    `bson:"streetAddress"`
	AptSuite      string    `bson:"aptSuite,omitempty"`
	City          string    `bson:"city"`
	State         string    `bson:"state,omitempty"`
	PostalCode    string    `bson:"postalCode"`
	Country       string    `bson:"country"`
	PhoneNumber   string    `bson:"phoneNumber"`
	Latitude      *float64  `bson:"latitude,omitempty"`
	Longitude     *float64  `bson:"longitude,omitempty"`
	IsDefault     bool      `bson:"isDefault"`
	Active        bool      `bson:"active"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

type productDocument struct {
	ID              string               `bson:"_id"`
	Name            string               `bson:"name"`
	Description     string               `bson:"description,omitempty"`
	Category        string               `bson:"category"`
	Images          []string             `bson:"images"`
	BasePrice       primitive.Decimal128 `bson:"basePrice"`
	AvailableSizes  []string             `bson:"availableSizes"`
	AvailableColors []string             `bson:"availableColors"`
	StockQuantity   int                  `bson:"stockQuantity"`
	Active          bool                 `bson:"active"`
	TenantID        string               `bson:"tenantId"`
	CreatedAt       time.Time            `bson:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt"`
}

type orderItemDocument struct {
	ID             string               `bson:"id"`
	ProductID      string               `bson:"productId"`
	ProductName    string               `bson:"productName"`
	Quantity       int                  `bson:"quantity"`
	UnitPrice      primitive.Decimal128 `bson:"unitPrice"`
	Size           string               `bson:"size,omitempty"`
	Color          string               `bson:"color,omitempty"`
	CustomerNotes  string               `bson:"customerNotes,omitempty"`
	DesignImageRef string               `bson:"designImageRef,omitempty"`
}

type orderDocument struct {
	ID                string               `bson:"_id"`
	CustomerID        string               `bson:"customerId"`
	CustomerEmail     string               `bson:"customerEmail"`
	TenantID          string               `bson:"tenantId"`
	ShippingAddressID *string              `bson:"shippingAddressId"`
	Items             []orderItemDocument  `bson:"items"`
	TotalAmount       primitive.Decimal128 `bson:"totalAmount"`
	Status            string               `bson:"status"`
	HeldFrom          *string              `bson:"heldFrom"`
	TrackingTokenURL  *string              `bson:"trackingTokenUrl"`
	CreatedAt         time.Time            `bson:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, errors.Wrapf(err, "convert %s to decimal128", d.String())
	}

	return d128, nil
}

func fromDecimal128(d128 primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(d128.String())
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "convert decimal128 %s", d128.String())
	}

	return d, nil
}

// parseID tolerates malformed ids written by other tools by mapping them to uuid.Nil.
func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}

	return id
}

func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()

	return &s
}

func optionalStatus(s *entity.OrderStatus) *string {
	if s == nil {
		return nil
	}
	v := s.String()

	return &v
}

func fromUserEntity(u *entity.User) *userDocument {
	return &userDocument{
		ID:           u.ID.String(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Roles:        u.Roles.ToStrings(),
		TenantID:     u.TenantID.String(),
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:           parseID(d.ID),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Roles:        entity.RoleSetFromStrings(d.Roles),
		TenantID:     parseID(d.TenantID),
		Active:       d.Active,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func fromAddressEntity(a *entity.Address) *addressDocument {
	return &addressDocument{
		ID:            a.ID.String(),
		UserID:        a.UserID.String(),
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
		Active:        a.Active,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (d *addressDocument) toEntity() *entity.Address {
	return &entity.Address{
		ID:            parseID(d.ID),
		UserID:        parseID(d.UserID),
		FullName:      d.FullName,
		StreetAddress: d.StreetAddress,
		AptSuite:      d.AptSuite,
		City:          d.City,
		State:         d.State,
		PostalCode:    d.PostalCode,
		Country:       d.Country,
		PhoneNumber:   d.PhoneNumber,
		Latitude:      d.Latitude,
		Longitude:     d.Longitude,
		IsDefault:     d.IsDefault,
		Active:        d.Active,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func fromProductEntity(p *entity.Product) (*productDocument, error) {
	price, err := toDecimal128(p.BasePrice)
	if err != nil {
		return nil, err
	}

	return &productDocument{
		ID:              p.ID.String(),
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Images:          p.Images,
		BasePrice:       price,
		AvailableSizes:  p.AvailableSizes,
		AvailableColors: p.AvailableColors,
		StockQuantity:   p.StockQuantity,
		Active:          p.Active,
		TenantID:        p.TenantID.String(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}, nil
}

func (d *productDocument) toEntity() (*entity.Product, error) {
	price, err := fromDecimal128(d.BasePrice)
	if err != nil {
		return nil, err
	}

	return &entity.Product{
		ID:              parseID(d.ID),
		Name:            d.Name,
		Description:     d.Description,
		Category:        d.Category,
		Images:          d.Images,
		BasePrice:       price,
		AvailableSizes:  d.AvailableSizes,
		AvailableColors: d.AvailableColors,
		StockQuantity:   d.StockQuantity,
		Active:          d.Active,
		TenantID:        parseID(d.TenantID),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

func fromOrderEntity(o *entity.Order) (*orderDocument, error) {
	total, err := toDecimal128(o.TotalAmount)
	if err != nil {
		return nil, err
	}

	doc := &orderDocument{
		ID:                o.ID.String(),
		CustomerID:        o.CustomerID.String(),
		CustomerEmail:     o.CustomerEmail,
		TenantID:          o.TenantID.String(),
		ShippingAddressID: optionalID(o.ShippingAddressID),
		Items:             make([]orderItemDocument, 0, len(o.Items)),
		TotalAmount:       total,
		Status:            o.Status.String(),
		HeldFrom:          optionalStatus(o.HeldFrom),
		TrackingTokenURL:  o.TrackingTokenURL,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
	for _, item := range o.Items {
		unitPrice, err := toDecimal128(item.UnitPrice)
		if err != nil {
			return nil, err
		}
		doc.Items = append(doc.Items, orderItemDocument{
			ID:             item.ID.String(),
			ProductID:      item.ProductID.String(),
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPrice:      unitPrice,
			Size:           item.Size,
			Color:          item.Color,
			CustomerNotes:  item.CustomerNotes,
			DesignImageRef: item.DesignImageRef,
		})
	}

	return doc, nil
}

func (d *orderDocument) toEntity() (*entity.Order, error) {
	total, err := fromDecimal128(d.TotalAmount)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:               parseID(d.ID),
		CustomerID:       parseID(d.CustomerID),
		CustomerEmail:    d.CustomerEmail,
		TenantID:         parseID(d.TenantID),
		Items:            make([]entity.OrderItem, 0, len(d.Items)),
		TotalAmount:      total,
		Status:           entity.OrderStatus(d.Status),
		TrackingTokenURL: d.TrackingTokenURL,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if d.ShippingAddressID != nil {
		id := parseID(*d.ShippingAddressID)
		order.ShippingAddressID = &id
	}
	if d.HeldFrom != nil && strings.TrimSpace(*d.HeldFrom) != "" {
		heldFrom := entity.OrderStatus(*d.HeldFrom)
		order.HeldFrom = &heldFrom
	}
	for _, item := range d.Items {
		unitPrice, err := fromDecimal128(item.UnitPrice)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, entity.OrderItem{
			ID:             parseID(item.ID),
			ProductID:      parseID(item.ProductID),
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPrice:      unitPrice,
			Size:           item.Size,
			Color:          item.Color,
			CustomerNotes:  item.CustomerNotes,
			DesignImageRef: item.DesignImageRef,
		})
	}

	return order, nil
}

type designAssetDocument struct {
	ID              string               `bson:"_id"`
	Name            string               `bson:"name"`
	Type            string               `bson:"type"`
	MockupImageURL  string               `bson:"mockupImageUrl"`
	BasePrice       primitive.Decimal128 `bson:"basePrice"`
	PrintAreaTop    string               `bson:"printAreaTop"`
	PrintAreaLeft   string               `bson:"printAreaLeft"`
	PrintAreaWidth  string               `bson:"printAreaWidth"`
	PrintAreaHeight string               `bson:"printAreaHeight"`
	CreatedAt       time.Time            `bson:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt"`
}

func fromDesignAssetEntity(a *entity.DesignAsset) (*designAssetDocument, error) {
	price, err := toDecimal128(a.BasePrice)
	if err != nil {
		return nil, err
	}

	return &designAssetDocument{
		ID:              a.ID.String(),
		Name:            a.Name,
		Type:            a.Type,
		MockupImageURL:  a.MockupImageURL,
		BasePrice:       price,
		PrintAreaTop:    a.PrintArea.Top,
		PrintAreaLeft:   a.PrintArea.Left,
		PrintAreaWidth:  a.PrintArea.Width,
		PrintAreaHeight: a.PrintArea.Height,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}, nil
}

func (d *designAssetDocument) toEntity() (*entity.DesignAsset, error) {
	price, err := fromDecimal128(d.BasePrice)
	if err != nil {
		return nil, err
	}

	return &entity.DesignAsset{
		ID:             parseID(d.ID),
		Name:           d.Name,
		Type:           d.Type,
		MockupImageURL: d.MockupImageURL,
		BasePrice:      price,
		PrintArea: entity.PrintArea{
			Top:    d.PrintAreaTop,
			Left:   d.PrintAreaLeft,
			Width:  d.PrintAreaWidth,
			Height: d.PrintAreaHeight,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}
