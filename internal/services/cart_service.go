package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/elkisamara/internal/models"
)

// CartService mutates carts and keeps their denormalized totals in
// step. Every mutation runs inside one transaction together with the
// recalculation, so totals never lag behind the line items.
type CartService struct {
	db *gorm.DB
}

// NewCartService constructs CartService.
func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetOrCreateCart returns the customer's open cart, creating an empty
// one when none exists.
func (s *CartService) GetOrCreateCart(customerID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Where("owner_id = ? AND in_order = ?", customerID, false).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{OwnerID: &customerID, FinalPrice: decimal.Zero}
		if err := s.db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// LoadCart returns a cart with items, products and size selections
// attached.
func (s *CartService) LoadCart(cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.
		Preload("Items.Product").
		Preload("Items.Selection.SizeVariant").
		First(&cart, "id = ?", cartID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem puts a product into the customer's open cart. An existing
// line for the same product has its quantity increased instead of a
// second line being created. A size variant may be chosen for new
// lines; its price then overrides the product's base price.
func (s *CartService) AddItem(customerID uuid.UUID, kind, slug string, qty int, sizeVariantID *uuid.UUID) (*models.Cart, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.GetOrCreateCart(customerID)
	if err != nil {
		return nil, err
	}
	if err := ensureMutable(cart); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		product, err := resolveProduct(tx, kind, slug)
		if err != nil {
			return err
		}

		var item models.CartItem
		err = tx.Where("cart_id = ? AND product_kind = ? AND product_id = ?",
			cart.ID, kind, product.ID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CustomerID:  customerID,
				CartID:      cart.ID,
				ProductKind: kind,
				ProductID:   product.ID,
				Quantity:    qty,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			if sizeVariantID != nil {
				var variant models.SizeVariant
				if err := tx.First(&variant, "id = ?", *sizeVariantID).Error; err != nil {
					return err
				}
				selection := models.VariantSelection{
					CartItemID:    item.ID,
					ProductID:     product.ID,
					SizeVariantID: variant.ID,
				}
				if err := tx.Create(&selection).Error; err != nil {
					return err
				}
			}
		case err != nil:
			return err
		default:
			item.Quantity += qty
			if err := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).
				Update("quantity", item.Quantity).Error; err != nil {
				return err
			}
		}

		if err := s.repriceItem(tx, item.ID); err != nil {
			return err
		}
		return s.recalcCart(tx, cart)
	})
	if err != nil {
		return nil, err
	}

	return s.LoadCart(cart.ID)
}

// RemoveItem deletes a line item together with its size selection and
// recalculates the cart.
func (s *CartService) RemoveItem(customerID, itemID uuid.UUID) (*models.Cart, error) {
	item, cart, err := s.itemForCustomer(customerID, itemID)
	if err != nil {
		return nil, err
	}
	if err := ensureMutable(cart); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_item_id = ?", item.ID).
			Delete(&models.VariantSelection{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
			return err
		}
		return s.recalcCart(tx, cart)
	})
	if err != nil {
		return nil, err
	}

	return s.LoadCart(cart.ID)
}

// ChangeQuantity sets a line item's quantity, reprices the line and
// recalculates the cart.
func (s *CartService) ChangeQuantity(customerID, itemID uuid.UUID, qty int) (*models.Cart, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	item, cart, err := s.itemForCustomer(customerID, itemID)
	if err != nil {
		return nil, err
	}
	if err := ensureMutable(cart); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).
			Update("quantity", qty).Error; err != nil {
			return err
		}
		if err := s.repriceItem(tx, item.ID); err != nil {
			return err
		}
		return s.recalcCart(tx, cart)
	})
	if err != nil {
		return nil, err
	}

	return s.LoadCart(cart.ID)
}

// ChangeVariant binds a line item to a different size variant. The new
// selection writes through to the line price and the cart totals in the
// same transaction.
func (s *CartService) ChangeVariant(customerID, itemID, sizeVariantID uuid.UUID) (*models.Cart, error) {
	item, cart, err := s.itemForCustomer(customerID, itemID)
	if err != nil {
		return nil, err
	}
	if err := ensureMutable(cart); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var variant models.SizeVariant
		if err := tx.First(&variant, "id = ?", sizeVariantID).Error; err != nil {
			return err
		}

		var selection models.VariantSelection
		err := tx.Where("cart_item_id = ?", item.ID).First(&selection).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			selection = models.VariantSelection{
				CartItemID:    item.ID,
				ProductID:     item.ProductID,
				SizeVariantID: variant.ID,
			}
			if err := tx.Create(&selection).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&models.VariantSelection{}).Where("id = ?", selection.ID).
				Update("size_variant_id", variant.ID).Error; err != nil {
				return err
			}
		}

		if err := s.repriceItem(tx, item.ID); err != nil {
			return err
		}
		return s.recalcCart(tx, cart)
	})
	if err != nil {
		return nil, err
	}

	return s.LoadCart(cart.ID)
}

// itemForCustomer loads a line item owned by the customer and the cart
// it belongs to.
func (s *CartService) itemForCustomer(customerID, itemID uuid.UUID) (*models.CartItem, *models.Cart, error) {
	var item models.CartItem
	if err := s.db.First(&item, "id = ? AND customer_id = ?", itemID, customerID).Error; err != nil {
		return nil, nil, err
	}

	var cart models.Cart
	if err := s.db.First(&cart, "id = ?", item.CartID).Error; err != nil {
		return nil, nil, err
	}

	return &item, &cart, nil
}

// repriceItem recomputes a line's final price from its product and
// current size selection.
func (s *CartService) repriceItem(tx *gorm.DB, itemID uuid.UUID) error {
	var item models.CartItem
	if err := tx.
		Preload("Product").
		Preload("Selection.SizeVariant").
		First(&item, "id = ?", itemID).Error; err != nil {
		return err
	}

	return tx.Model(&models.CartItem{}).Where("id = ?", item.ID).
		Update("final_price", LineFinalPrice(&item)).Error
}

// recalcCart recomputes the denormalized totals from the cart's current
// line items. The update is guarded by the version the caller read, so
// a concurrent recalculation surfaces as ErrCartConflict instead of a
// silent lost update.
func (s *CartService) recalcCart(tx *gorm.DB, cart *models.Cart) error {
	var items []models.CartItem
	if err := tx.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		return err
	}

	total, count := CartTotals(items)

	res := tx.Model(&models.Cart{}).
		Where("id = ? AND version = ?", cart.ID, cart.Version).
		Updates(map[string]interface{}{
			"final_price":    total,
			"total_products": count,
			"version":        cart.Version + 1,
		})
	if err := versionGuard(res); err != nil {
		return err
	}

	cart.FinalPrice = total
	cart.TotalProducts = count
	cart.Version++
	return nil
}

// ensureMutable rejects carts already converted into an order.
func ensureMutable(cart *models.Cart) error {
	if cart.InOrder {
		return ErrCartFrozen
	}
	return nil
}

// versionGuard interprets the result of a version-guarded cart update:
// no matched row means another writer bumped the version first.
func versionGuard(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCartConflict
	}
	return nil
}

// resolveProduct maps a (kind, slug) pair onto a concrete product row.
// New product kinds get a case here and a constant in models.
func resolveProduct(tx *gorm.DB, kind, slug string) (*models.Product, error) {
	switch kind {
	case models.KindChristmasTree:
		var product models.Product
		if err := tx.First(&product, "slug = ?", slug).Error; err != nil {
			return nil, err
		}
		return &product, nil
	default:
		return nil, ErrUnknownProductKind
	}
}
