package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart holds a customer's line items together with denormalized totals.
// Totals are never taken from a caller; the cart service recomputes them
// after every membership or quantity change. Version backs an optimistic
// compare-and-set so concurrent recalculations cannot silently overwrite
// each other.
type Cart struct {
	BaseModel
	OwnerID          *uuid.UUID      `gorm:"type:uuid;index" json:"owner_id"`
	Owner            *Customer       `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	TotalProducts    int             `json:"total_products"`
	FinalPrice       decimal.Decimal `gorm:"type:decimal(16,2)" json:"final_price"`
	InOrder          bool            `json:"in_order"`
	ForAnonymousUser bool            `json:"for_anonymous_user"`
	Version          int64           `json:"version"`
	Items            []CartItem      `gorm:"foreignKey:CartID" json:"items,omitempty"`
}

// CartItem is one line of a cart: a (kind, product) reference, a
// quantity and the computed line price. FinalPrice is always
// quantity times the unit price; the unit price comes from the chosen
// size variant when a selection exists, else from the product itself.
type CartItem struct {
	BaseModel
	CustomerID  uuid.UUID         `gorm:"type:uuid;index" json:"customer_id"`
	CartID      uuid.UUID         `gorm:"type:uuid;index" json:"cart_id"`
	ProductKind string            `gorm:"index:idx_cart_item_product" json:"product_kind"`
	ProductID   uuid.UUID         `gorm:"type:uuid;index:idx_cart_item_product" json:"product_id"`
	Product     *Product          `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity    int               `gorm:"default:1" json:"quantity"`
	FinalPrice  decimal.Decimal   `gorm:"type:decimal(16,2)" json:"final_price"`
	Selection   *VariantSelection `gorm:"foreignKey:CartItemID" json:"selection,omitempty"`
}

// VariantSelection binds a cart item to one priced size of its product.
type VariantSelection struct {
	BaseModel
	CartItemID    uuid.UUID    `gorm:"type:uuid;uniqueIndex" json:"cart_item_id"`
	ProductID     uuid.UUID    `gorm:"type:uuid;index" json:"product_id"`
	SizeVariantID uuid.UUID    `gorm:"type:uuid;index" json:"size_variant_id"`
	SizeVariant   *SizeVariant `json:"size_variant,omitempty"`
}
