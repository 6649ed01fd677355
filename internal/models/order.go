package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses, in lifecycle order.
const (
	OrderStatusNew        = "new"
	OrderStatusInProgress = "in_progress"
	OrderStatusReady      = "is_ready"
	OrderStatusCompleted  = "completed"
)

// Buying types.
const (
	BuyingTypeSelf     = "self"
	BuyingTypeDelivery = "delivery"
)

// Order freezes a cart plus delivery details at checkout time.
// ContentDescription is generated once when the order is created and is
// never re-derived, so later cart drift cannot rewrite what was charged.
type Order struct {
	BaseModel
	CustomerID         uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Customer           *Customer `json:"customer,omitempty"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	CartID             uuid.UUID `gorm:"type:uuid;index" json:"cart_id"`
	Cart               *Cart     `json:"cart,omitempty"`
	Status             string    `gorm:"default:new" json:"status"`
	BuyingType         string    `gorm:"default:self" json:"buying_type"`
	Comment            string    `json:"comment"`
	OrderDate          time.Time `json:"order_date"`
	ContentDescription string    `json:"content_description"`
}
