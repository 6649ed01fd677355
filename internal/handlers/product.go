package handlers

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/elkisamara/internal/models"
	"github.com/example/elkisamara/internal/utils"
)

// ProductHandler manages products and their size variants.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// ListProducts returns paginated products with optional filters.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Product{})

	if slug := c.Query("category"); slug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", slug)
	}

	if treeType := c.Query("tree_type"); treeType != "" {
		query = query.Where("product_type = ?", treeType)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", q, q)
	}

	if minPrice := c.Query("min_price"); minPrice != "" {
		if val, err := decimal.NewFromString(minPrice); err == nil {
			query = query.Where("base_price >= ?", val)
		}
	}

	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if val, err := decimal.NewFromString(maxPrice); err == nil {
			query = query.Where("base_price <= ?", val)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("SizeVariants").
		Limit(pg.Limit).Offset(pg.Offset).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetProduct loads one product by its (kind, slug) pair with category
// and size variants attached.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	kind := c.Params("kind")
	if kind != models.KindChristmasTree {
		return fiber.NewError(fiber.StatusNotFound, "unknown product kind")
	}

	var product models.Product
	if err := h.db.Preload("Category").Preload("SizeVariants").
		First(&product, "slug = ?", c.Params("slug")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// CreateProduct persists a new product.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var payload models.Product
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Title == "" || payload.Slug == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title and slug are required")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateProduct updates an existing product.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var payload models.Product
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = product.ID
	if err := h.db.Model(&product).Updates(payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct removes a product by ID.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadProductImage stores a product photo on disk and records its
// path on the product.
func (h *ProductHandler) UploadProductImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}

	path, err := productImagePath(product.ID, file.Filename)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := c.SaveFile(file, path); err != nil {
		return err
	}

	if err := h.db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("image", path).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"image": path}})
}

// productImagePath builds the on-disk location for a product photo.
// The name is keyed by product ID so a re-upload replaces the previous
// file instead of accumulating orphans.
func productImagePath(productID uuid.UUID, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", errors.New("unsupported image type")
	}
	return filepath.Join("uploads", "products", "tree", productID.String()+ext), nil
}

// AttachSizeVariant links a size variant to a product.
func (h *ProductHandler) AttachSizeVariant(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}
	variantID, err := uuid.Parse(c.Params("variantID"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid variant id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var variant models.SizeVariant
	if err := h.db.First(&variant, "id = ?", variantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "size variant not found")
		}
		return err
	}

	if err := h.db.Model(&product).Association("SizeVariants").Append(&variant); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

// DetachSizeVariant unlinks a size variant from a product.
func (h *ProductHandler) DetachSizeVariant(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}
	variantID, err := uuid.Parse(c.Params("variantID"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid variant id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", productID).Error; err != nil {
		return err
	}

	variant := models.SizeVariant{BaseModel: models.BaseModel{ID: variantID}}
	if err := h.db.Model(&product).Association("SizeVariants").Delete(&variant); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListSizeVariants returns all size variants.
func (h *ProductHandler) ListSizeVariants(c *fiber.Ctx) error {
	var variants []models.SizeVariant
	if err := h.db.Order("price asc").Find(&variants).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": variants})
}

// CreateSizeVariant persists a new size variant.
func (h *ProductHandler) CreateSizeVariant(c *fiber.Ctx) error {
	var payload models.SizeVariant
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateSizeVariant updates a size variant's label or price.
func (h *ProductHandler) UpdateSizeVariant(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var variant models.SizeVariant
	if err := h.db.First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "size variant not found")
		}
		return err
	}

	var payload models.SizeVariant
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = variant.ID
	if err := h.db.Model(&variant).Updates(payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": variant})
}

// DeleteSizeVariant removes a size variant by ID.
func (h *ProductHandler) DeleteSizeVariant(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.SizeVariant{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
