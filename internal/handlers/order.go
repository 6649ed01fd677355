package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/elkisamara/internal/models"
	"github.com/example/elkisamara/internal/services"
	"github.com/example/elkisamara/internal/utils"
)

// OrderHandler manages checkout and order endpoints.
type OrderHandler struct {
	db       *gorm.DB
	checkout *services.CheckoutService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, checkout *services.CheckoutService) *OrderHandler {
	return &OrderHandler{db: db, checkout: checkout}
}

type checkoutRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	BuyingType string `json:"buying_type"`
	Comment    string `json:"comment"`
	OrderDate  string `json:"order_date"`
}

// Checkout converts the customer's open cart into an order.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	svcReq := services.CheckoutRequest{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Address:    req.Address,
		BuyingType: req.BuyingType,
		Comment:    req.Comment,
	}
	if req.OrderDate != "" {
		parsed, err := time.Parse("2006-01-02", req.OrderDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid order_date, expected YYYY-MM-DD")
		}
		svcReq.OrderDate = parsed
	}

	order, err := h.checkout.Checkout(customer.ID, svcReq)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrInvalidPhone),
			errors.Is(err, services.ErrInvalidBuyingType):
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, services.ErrCartConflict):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		default:
			return err
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":                  order.ID,
			"status":              order.Status,
			"buying_type":         order.BuyingType,
			"order_date":          order.OrderDate,
			"content_description": order.ContentDescription,
		},
	})
}

// ListOrders returns orders for the authenticated customer.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{}).Where("customer_id = ?", customer.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order for the authenticated customer.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Cart.Items.Product").
		First(&order, "id = ? AND customer_id = ?", id, customer.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// ChangeStatus moves an order along its lifecycle. Staff only.
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req changeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.checkout.ChangeStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTransition):
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		default:
			return err
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}
