package mongodb

import (
	"testing"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderDocument_KeepsExactAmounts(t *testing.T) {
	held := entity.OrderStatusPaid
	addressID := uuid.New()
	order := &entity.Order{
		ID:                uuid.New(),
		CustomerID:        uuid.New(),
		TenantID:          uuid.New(),
		ShippingAddressID: &addressID,
		Status:            entity.OrderStatusHold,
		HeldFrom:          &held,
		TotalAmount:       decimal.RequireFromString("130.00"),
		Items: []entity.OrderItem{
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.RequireFromString("50.00")},
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.RequireFromString("30.00")},
		},
	}

	doc, err := fromOrderEntity(order)
	require.NoError(t, err)
	assert.Nil(t, doc.TrackingTokenURL)
	assert.Equal(t, "PAID", *doc.HeldFrom)

	back, err := doc.toEntity()
	require.NoError(t, err)
	assert.True(t, back.TotalAmount.Equal(order.TotalAmount))
	assert.True(t, entity.SumItems(back.Items).Equal(back.TotalAmount))
	assert.Equal(t, entity.OrderStatusPaid, back.HeldFromStatus())
	assert.Equal(t, addressID, *back.ShippingAddressID)
}

func TestUserDocument_RolesAsNames(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Roles: entity.NewRoleSet(entity.RoleWorker, entity.RoleCustomer)}

	doc := fromUserEntity(user)
	assert.Equal(t, []string{"WORKER", "CUSTOMER"}, doc.Roles)
	assert.Equal(t, user.Roles, doc.toEntity().Roles)
}

func TestParseID_Malformed(t *testing.T) {
	assert.Equal(t, uuid.Nil, parseID("not-a-uuid"))
}

func TestDesignAssetDocument_FlattensPrintArea(t *testing.T) {
	asset := entity.DefaultDesignAssets()[1]
	asset.ID = uuid.New()

	doc, err := fromDesignAssetEntity(asset)
	require.NoError(t, err)
	assert.Equal(t, "30%", doc.PrintAreaTop)
	assert.Equal(t, "25%", doc.PrintAreaHeight)

	back, err := doc.toEntity()
	require.NoError(t, err)
	assert.Equal(t, asset.PrintArea, back.PrintArea)
	assert.True(t, back.BasePrice.Equal(decimal.RequireFromString("950.00")))
	assert.Equal(t, asset.ID, back.ID)
}
