package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/elkisamara/internal/models"
)

func treeItem(title string, basePrice int64, qty int, variantPrice *int64) models.CartItem {
	item := models.CartItem{
		Quantity: qty,
		Product: &models.Product{
			Title:     title,
			BasePrice: decimal.NewFromInt(basePrice),
		},
	}
	if variantPrice != nil {
		item.Selection = &models.VariantSelection{
			SizeVariant: &models.SizeVariant{Price: decimal.NewFromInt(*variantPrice)},
		}
	}
	item.FinalPrice = LineFinalPrice(&item)
	return item
}

func int64ptr(v int64) *int64 { return &v }

func TestLineUnitPriceVariantOverridesBase(t *testing.T) {
	item := treeItem("Spruce", 1200, 1, int64ptr(1500))
	assert.True(t, LineUnitPrice(&item).Equal(decimal.NewFromInt(1500)))
}

func TestLineUnitPriceFallsBackToBase(t *testing.T) {
	item := treeItem("Spruce", 1200, 1, nil)
	assert.True(t, LineUnitPrice(&item).Equal(decimal.NewFromInt(1200)))
}

func TestLineFinalPriceMultipliesByQuantity(t *testing.T) {
	withVariant := treeItem("Spruce", 1200, 4, int64ptr(1500))
	assert.True(t, withVariant.FinalPrice.Equal(decimal.NewFromInt(6000)))

	withoutVariant := treeItem("Pine", 900, 3, nil)
	assert.True(t, withoutVariant.FinalPrice.Equal(decimal.NewFromInt(2700)))
}

func TestCartTotalsEmptyCart(t *testing.T) {
	total, count := CartTotals(nil)
	assert.True(t, total.IsZero())
	assert.Equal(t, 0, count)
}

func TestCartTotalsAfterAdd(t *testing.T) {
	// Empty cart, then one line: Spruce, qty 2, chosen size priced 1500.
	items := []models.CartItem{treeItem("Spruce", 1200, 2, int64ptr(1500))}

	total, count := CartTotals(items)
	require.True(t, total.Equal(decimal.NewFromInt(3000)), "got %s", total)
	assert.Equal(t, 2, count)
}

func TestCartTotalsAfterQuantityChange(t *testing.T) {
	items := []models.CartItem{treeItem("Spruce", 1200, 2, int64ptr(1500))}

	// Quantity goes 2 -> 5 with the same variant; the line is repriced
	// before totals are recomputed.
	items[0].Quantity = 5
	items[0].FinalPrice = LineFinalPrice(&items[0])
	require.True(t, items[0].FinalPrice.Equal(decimal.NewFromInt(7500)))

	total, count := CartTotals(items)
	assert.True(t, total.Equal(decimal.NewFromInt(7500)))
	assert.Equal(t, 5, count)
}

func TestCartTotalsAfterRemoval(t *testing.T) {
	items := []models.CartItem{treeItem("Spruce", 1200, 2, int64ptr(1500))}
	items = items[:0]

	total, count := CartTotals(items)
	assert.True(t, total.IsZero())
	assert.Equal(t, 0, count)
}

func TestCartTotalsIdempotent(t *testing.T) {
	items := []models.CartItem{
		treeItem("Spruce", 1200, 1, nil),
		treeItem("Pine", 900, 3, nil),
	}

	firstTotal, firstCount := CartTotals(items)
	secondTotal, secondCount := CartTotals(items)

	assert.True(t, firstTotal.Equal(secondTotal))
	assert.Equal(t, firstCount, secondCount)
}

func TestCartTotalsMixedLines(t *testing.T) {
	items := []models.CartItem{
		treeItem("Spruce", 1200, 1, nil),
		treeItem("Pine", 900, 3, nil),
	}

	total, count := CartTotals(items)
	assert.True(t, total.Equal(decimal.NewFromInt(3900)))
	assert.Equal(t, 4, count)
}
