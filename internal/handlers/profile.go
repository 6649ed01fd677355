package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/elkisamara/internal/middleware"
	"github.com/example/elkisamara/internal/models"
)

// ProfileHandler manages customer profile endpoints.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// currentCustomer resolves the authenticated user into its customer
// record.
func currentCustomer(c *fiber.Ctx, db *gorm.DB) (*models.Customer, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var customer models.Customer
	if err := db.Preload("User").First(&customer, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return nil, err
	}

	return &customer, nil
}

// GetProfile returns the authenticated customer profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":         customer.ID,
			"first_name": customer.User.FirstName,
			"last_name":  customer.User.LastName,
			"username":   customer.User.Username,
			"phone":      customer.Phone,
			"address":    customer.Address,
			"created_at": customer.CreatedAt,
			"updated_at": customer.UpdatedAt,
		},
	})
}

type updateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// UpdateProfile updates the customer's contact details.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if req.FirstName != "" || req.LastName != "" {
			updates := map[string]interface{}{}
			if req.FirstName != "" {
				updates["first_name"] = req.FirstName
			}
			if req.LastName != "" {
				updates["last_name"] = req.LastName
			}
			if err := tx.Model(&models.User{}).Where("id = ?", customer.UserID).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
			Updates(map[string]interface{}{
				"phone":   req.Phone,
				"address": req.Address,
			}).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}
