package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/elkisamara/internal/models"
)

// Deliberately loose: digits with an optional leading plus and common
// separators, the way customers actually type local numbers.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,18}$`)

// CheckoutService converts open carts into orders and walks orders
// through their status lifecycle.
type CheckoutService struct {
	db       *gorm.DB
	telegram *TelegramService
}

// NewCheckoutService constructs CheckoutService.
func NewCheckoutService(db *gorm.DB, telegram *TelegramService) *CheckoutService {
	return &CheckoutService{db: db, telegram: telegram}
}

// CheckoutRequest carries the order form fields. Blank contact fields
// are backfilled from the customer record.
type CheckoutRequest struct {
	FirstName  string
	LastName   string
	Phone      string
	Address    string
	BuyingType string
	Comment    string
	OrderDate  time.Time
}

func (r CheckoutRequest) validate() error {
	if r.Phone != "" && !phonePattern.MatchString(r.Phone) {
		return ErrInvalidPhone
	}
	switch r.BuyingType {
	case "", models.BuyingTypeSelf, models.BuyingTypeDelivery:
		return nil
	default:
		return ErrInvalidBuyingType
	}
}

// Checkout freezes the customer's open cart and creates an order from
// it. The content description is rendered here, once, from the cart as
// charged; nothing regenerates it afterwards.
func (s *CheckoutService) Checkout(customerID uuid.UUID, req CheckoutRequest) (*models.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Preload("User").First(&customer, "id = ?", customerID).Error; err != nil {
			return err
		}

		var cart models.Cart
		err := tx.
			Preload("Items.Product").
			Preload("Items.Selection.SizeVariant").
			Where("owner_id = ? AND in_order = ?", customerID, false).
			First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmptyCart
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		res := tx.Model(&models.Cart{}).
			Where("id = ? AND version = ?", cart.ID, cart.Version).
			Updates(map[string]interface{}{
				"in_order": true,
				"version":  cart.Version + 1,
			})
		if err := versionGuard(res); err != nil {
			return err
		}
		cart.InOrder = true
		cart.Version++

		order = models.Order{
			CustomerID: customer.ID,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Phone:      req.Phone,
			Address:    req.Address,
			CartID:     cart.ID,
			Status:     models.OrderStatusNew,
			BuyingType: req.BuyingType,
			Comment:    req.Comment,
			OrderDate:  req.OrderDate,
		}
		if order.BuyingType == "" {
			order.BuyingType = models.BuyingTypeSelf
		}
		if order.OrderDate.IsZero() {
			order.OrderDate = time.Now()
		}
		applyCustomerDefaults(&order, &customer)

		order.ID = uuid.New()
		order.ContentDescription = BuildContentDescription(&order, &cart)

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		order.Cart = &cart
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.telegram != nil {
		go func(o models.Order) {
			if err := s.telegram.NotifyNewOrder(&o); err != nil {
				log.Printf("[Checkout] Telegram notification failed: %v", err)
			}
		}(order)
	}

	return &order, nil
}

// ChangeStatus moves an order one step along its lifecycle. Only the
// status column changes; the content snapshot stays as generated at
// checkout.
func (s *CheckoutService) ChangeStatus(orderID uuid.UUID, next string) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}
		if !CanTransition(order.Status, next) {
			return ErrInvalidTransition
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", next).Error; err != nil {
			return err
		}
		order.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

var statusRank = map[string]int{
	models.OrderStatusNew:        0,
	models.OrderStatusInProgress: 1,
	models.OrderStatusReady:      2,
	models.OrderStatusCompleted:  3,
}

// CanTransition reports whether an order may move between the two
// statuses. The lifecycle is linear and advances one step at a time.
func CanTransition(from, to string) bool {
	fromRank, fromOK := statusRank[from]
	toRank, toOK := statusRank[to]
	return fromOK && toOK && toRank == fromRank+1
}

// applyCustomerDefaults fills blank contact fields on the order from
// the customer record and its linked account.
func applyCustomerDefaults(order *models.Order, customer *models.Customer) {
	if customer == nil {
		return
	}
	if customer.User != nil {
		if order.FirstName == "" {
			order.FirstName = customer.User.FirstName
		}
		if order.LastName == "" {
			order.LastName = customer.User.LastName
		}
	}
	if order.Phone == "" {
		order.Phone = customer.Phone
	}
	if order.Address == "" {
		order.Address = customer.Address
	}
}

// BuildContentDescription renders the cart into the order's textual
// snapshot: the order number, the cart totals and one line per item.
func BuildContentDescription(order *models.Order, cart *models.Cart) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%s\n", order.ID)
	fmt.Fprintf(&b, "Order total: %s, total items: %d\n\n",
		cart.FinalPrice.StringFixed(2), cart.TotalProducts)
	b.WriteString("Items:\n")
	for i := range cart.Items {
		item := &cart.Items[i]
		title := ""
		if item.Product != nil {
			title = item.Product.Title
		}
		fmt.Fprintf(&b, "%s: quantity %d, line total %s\n",
			title, item.Quantity, item.FinalPrice.StringFixed(2))
	}
	return b.String()
}
