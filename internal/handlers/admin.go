package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/elkisamara/internal/models"
	"github.com/example/elkisamara/internal/utils"
)

// AdminHandler manages the back-office endpoints.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// DashboardStats returns aggregate statistics for the back-office
// dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalCustomers int64
	if err := h.db.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
		return err
	}

	var totalProducts int64
	if err := h.db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	// Revenue comes from the carts frozen into orders; their totals are
	// immutable after checkout.
	var totalRevenue float64
	if err := h.db.Model(&models.Cart{}).
		Where("in_order = ?", true).
		Select("COALESCE(SUM(final_price), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_customers":  totalCustomers,
			"total_products":   totalProducts,
			"total_orders":     totalOrders,
			"total_revenue":    totalRevenue,
			"orders_by_status": ordersByStatus,
		},
	})
}

// ListAllOrders returns all orders with pagination and filtering.
func (h *AdminHandler) ListAllOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if search := c.Query("search"); search != "" {
		q := "%" + search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR phone ILIKE ? OR address ILIKE ?",
			q, q, q, q,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Customer.User").Preload("Cart").
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

// ListAllCustomers returns all customers with order counts.
func (h *AdminHandler) ListAllCustomers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Customer{})

	if search := c.Query("search"); search != "" {
		q := "%" + search + "%"
		query = query.Where("phone ILIKE ? OR address ILIKE ?", q, q)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var customers []models.Customer
	if err := query.Preload("User").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&customers).Error; err != nil {
		return err
	}

	type customerStats struct {
		CustomerID string `json:"customer_id"`
		OrderCount int64  `json:"order_count"`
	}
	var stats []customerStats
	if err := h.db.Model(&models.Order{}).
		Select("customer_id, count(*) as order_count").
		Group("customer_id").
		Scan(&stats).Error; err != nil {
		return err
	}

	statsMap := make(map[string]int64)
	for _, s := range stats {
		statsMap[s.CustomerID] = s.OrderCount
	}

	type customerResponse struct {
		models.Customer
		OrderCount int64 `json:"order_count"`
	}

	result := make([]customerResponse, len(customers))
	for i, cust := range customers {
		result[i] = customerResponse{Customer: cust}
		result[i].OrderCount = statsMap[cust.ID.String()]
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// RecentOrders returns the most recent orders for the dashboard.
func (h *AdminHandler) RecentOrders(c *fiber.Ctx) error {
	var orders []models.Order
	if err := h.db.Preload("Customer.User").
		Order("created_at desc").
		Limit(5).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": orders})
}
