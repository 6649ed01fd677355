package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/elkisamara/internal/models"
)

func TestBuildContentDescription(t *testing.T) {
	items := []models.CartItem{
		treeItem("Spruce", 1200, 1, nil),
		treeItem("Pine", 900, 3, nil),
	}
	total, count := CartTotals(items)

	cart := models.Cart{
		Items:         items,
		FinalPrice:    total,
		TotalProducts: count,
	}
	order := models.Order{}
	order.ID = uuid.New()

	description := BuildContentDescription(&order, &cart)

	assert.Contains(t, description, fmt.Sprintf("Order #%s", order.ID))
	assert.Contains(t, description, "Order total: 3900.00, total items: 4")
	assert.Contains(t, description, "Spruce: quantity 1, line total 1200.00")
	assert.Contains(t, description, "Pine: quantity 3, line total 2700.00")
}

func TestBuildContentDescriptionEmptyCart(t *testing.T) {
	cart := models.Cart{FinalPrice: decimal.Zero}
	order := models.Order{}
	order.ID = uuid.New()

	description := BuildContentDescription(&order, &cart)
	assert.Contains(t, description, "Order total: 0.00, total items: 0")
}

func TestApplyCustomerDefaultsBackfillsBlankFields(t *testing.T) {
	customer := &models.Customer{
		Phone:   "+7 927 000-00-00",
		Address: "Samara, Lesnaya 5",
		User: &models.User{
			FirstName: "Ivan",
			LastName:  "Petrov",
		},
	}

	order := models.Order{}
	applyCustomerDefaults(&order, customer)

	assert.Equal(t, "Ivan", order.FirstName)
	assert.Equal(t, "Petrov", order.LastName)
	assert.Equal(t, "+7 927 000-00-00", order.Phone)
	assert.Equal(t, "Samara, Lesnaya 5", order.Address)
}

func TestApplyCustomerDefaultsKeepsProvidedFields(t *testing.T) {
	customer := &models.Customer{
		Phone:   "+7 927 000-00-00",
		Address: "Samara, Lesnaya 5",
		User:    &models.User{FirstName: "Ivan", LastName: "Petrov"},
	}

	order := models.Order{
		FirstName: "Maria",
		Phone:     "+7 927 111-11-11",
	}
	applyCustomerDefaults(&order, customer)

	assert.Equal(t, "Maria", order.FirstName)
	assert.Equal(t, "Petrov", order.LastName)
	assert.Equal(t, "+7 927 111-11-11", order.Phone)
	assert.Equal(t, "Samara, Lesnaya 5", order.Address)
}

func TestCheckoutRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CheckoutRequest
		wantErr error
	}{
		{"empty form", CheckoutRequest{}, nil},
		{"plain digits", CheckoutRequest{Phone: "89270001122"}, nil},
		{"international", CheckoutRequest{Phone: "+7 (927) 000-11-22"}, nil},
		{"letters in phone", CheckoutRequest{Phone: "call me"}, ErrInvalidPhone},
		{"too short", CheckoutRequest{Phone: "123"}, ErrInvalidPhone},
		{"self pickup", CheckoutRequest{BuyingType: models.BuyingTypeSelf}, nil},
		{"delivery", CheckoutRequest{BuyingType: models.BuyingTypeDelivery}, nil},
		{"unknown buying type", CheckoutRequest{BuyingType: "teleport"}, ErrInvalidBuyingType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.OrderStatusNew, models.OrderStatusInProgress, true},
		{models.OrderStatusInProgress, models.OrderStatusReady, true},
		{models.OrderStatusReady, models.OrderStatusCompleted, true},
		{models.OrderStatusNew, models.OrderStatusReady, false},
		{models.OrderStatusNew, models.OrderStatusCompleted, false},
		{models.OrderStatusCompleted, models.OrderStatusNew, false},
		{models.OrderStatusInProgress, models.OrderStatusNew, false},
		{models.OrderStatusCompleted, "archived", false},
		{"unknown", models.OrderStatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}
