package models

import "github.com/google/uuid"

// User is an authenticated account.
type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex" json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PasswordHash string `json:"-"`
	IsStaff      bool   `json:"is_staff"`
}

// Customer wraps a user account with shop-specific contact details and
// owns the user's carts and orders.
type Customer struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	User    *User     `json:"user,omitempty"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`
	Orders  []Order   `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
}
