package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product kind tags. Cart lines reference products by an explicit
// (kind, id) pair instead of a dynamic type lookup; every kind a line
// item may point at is listed here.
const (
	KindChristmasTree = "christmas_tree"
)

// Product is a sellable tree. BasePrice applies when the customer picks
// no size; products sold strictly by size keep it at zero and rely on
// their variants.
type Product struct {
	BaseModel
	CategoryID  uuid.UUID       `gorm:"type:uuid;index" json:"category_id"`
	Category    *Category       `json:"category,omitempty"`
	Title       string          `json:"title"`
	Slug        string          `gorm:"uniqueIndex" json:"slug"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(16,2)" json:"base_price"`
	ProductType string          `gorm:"index" json:"product_type"`
	FromPlace   string          `json:"from_place"`
	Image       string          `json:"image"`
	SizeVariants []SizeVariant  `gorm:"many2many:product_size_variants;" json:"size_variants,omitempty"`
}

// SizeVariant is a (height label, price) pair shared across products.
type SizeVariant struct {
	BaseModel
	Height   string          `json:"height"`
	Price    decimal.Decimal `gorm:"type:decimal(16,2)" json:"price"`
	Products []Product       `gorm:"many2many:product_size_variants;" json:"products,omitempty"`
}
