package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/elkisamara/internal/models"
	"github.com/example/elkisamara/internal/services"
)

// CartHandler exposes the customer's cart.
type CartHandler struct {
	db    *gorm.DB
	carts *services.CartService
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB, carts *services.CartService) *CartHandler {
	return &CartHandler{db: db, carts: carts}
}

// mapCartError translates cart service sentinels into HTTP errors.
func mapCartError(err error) error {
	switch {
	case errors.Is(err, services.ErrCartFrozen):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrCartConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrUnknownProductKind):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, "not found")
	default:
		return err
	}
}

// GetCart returns the customer's open cart with all line items.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	cart, err := h.carts.GetOrCreateCart(customer.ID)
	if err != nil {
		return err
	}

	loaded, err := h.carts.LoadCart(cart.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": loaded})
}

type addItemRequest struct {
	ProductKind   string `json:"product_kind"`
	ProductSlug   string `json:"product_slug"`
	Quantity      int    `json:"quantity"`
	SizeVariantID string `json:"size_variant_id"`
}

// AddItem adds a product to the cart, optionally with a chosen size.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.ProductKind == "" {
		req.ProductKind = models.KindChristmasTree
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	var sizeVariantID *uuid.UUID
	if req.SizeVariantID != "" {
		id, err := uuid.Parse(req.SizeVariantID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid size variant id")
		}
		sizeVariantID = &id
	}

	cart, err := h.carts.AddItem(customer.ID, req.ProductKind, req.ProductSlug, req.Quantity, sizeVariantID)
	if err != nil {
		return mapCartError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": cart})
}

// RemoveItem deletes a line item from the cart.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	cart, err := h.carts.RemoveItem(customer.ID, itemID)
	if err != nil {
		return mapCartError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": cart})
}

type changeQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ChangeQuantity sets a line item's quantity.
func (h *CartHandler) ChangeQuantity(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req changeQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	cart, err := h.carts.ChangeQuantity(customer.ID, itemID, req.Quantity)
	if err != nil {
		return mapCartError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": cart})
}

type changeVariantRequest struct {
	SizeVariantID string `json:"size_variant_id"`
}

// ChangeVariant rebinds a line item to a different size variant.
func (h *CartHandler) ChangeVariant(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req changeVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	variantID, err := uuid.Parse(req.SizeVariantID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid size variant id")
	}

	cart, err := h.carts.ChangeVariant(customer.ID, itemID, variantID)
	if err != nil {
		return mapCartError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": cart})
}
