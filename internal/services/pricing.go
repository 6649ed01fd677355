package services

import (
	"github.com/shopspring/decimal"

	"github.com/example/elkisamara/internal/models"
)

// LineUnitPrice returns the price one unit of the line sells for: the
// chosen size variant's price when a selection exists, otherwise the
// product's base price.
func LineUnitPrice(item *models.CartItem) decimal.Decimal {
	if item.Selection != nil && item.Selection.SizeVariant != nil {
		return item.Selection.SizeVariant.Price
	}
	if item.Product != nil {
		return item.Product.BasePrice
	}
	return decimal.Zero
}

// LineFinalPrice computes quantity times unit price for one line.
func LineFinalPrice(item *models.CartItem) decimal.Decimal {
	return LineUnitPrice(item).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// CartTotals sums line prices and quantities over the given items.
// An empty set yields zero for both.
func CartTotals(items []models.CartItem) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for i := range items {
		total = total.Add(items[i].FinalPrice)
		count += items[i].Quantity
	}
	return total, count
}
