package services

import (
	"gorm.io/gorm"

	"github.com/example/elkisamara/internal/models"
)

// CatalogService builds the read-mostly catalog views: the sidebar
// category tree and the main-page product feed.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService constructs CatalogService.
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// SidebarType is one tree-type entry inside a sidebar category.
type SidebarType struct {
	ProductTypeName string `json:"product_type_name"`
}

// SidebarCategory is one category with the tree types it contains.
type SidebarCategory struct {
	SubcategoryName string        `json:"subcategory_name"`
	SubcategorySlug string        `json:"subcategory_slug"`
	Types           []SidebarType `json:"types"`
}

// SidebarKind is the top level of the sidebar: one product kind with
// its categories.
type SidebarKind struct {
	CategoryName  string            `json:"category_name"`
	CategorySlug  string            `json:"category_slug"`
	Subcategories []SidebarCategory `json:"subcategories"`
}

type sidebarRow struct {
	CategoryName string
	CategorySlug string
	ProductType  string
}

// Sidebar returns the left-sidebar tree: product kind, then the
// categories that actually hold products, then the tree types inside
// each category.
func (s *CatalogService) Sidebar() ([]SidebarKind, error) {
	var rows []sidebarRow
	if err := s.db.Model(&models.Product{}).
		Select("categories.name AS category_name, categories.slug AS category_slug, products.product_type").
		Joins("JOIN categories ON categories.id = products.category_id").
		Group("categories.name, categories.slug, products.product_type").
		Order("categories.name").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return []SidebarKind{
		buildSidebarKind(models.KindChristmasTree, "Christmas trees", rows),
	}, nil
}

// buildSidebarKind folds grouped (category, product_type) rows into the
// nested sidebar shape.
func buildSidebarKind(kindSlug, kindName string, rows []sidebarRow) SidebarKind {
	kind := SidebarKind{
		CategoryName:  kindName,
		CategorySlug:  kindSlug,
		Subcategories: []SidebarCategory{},
	}

	index := map[string]int{}
	for _, row := range rows {
		pos, ok := index[row.CategorySlug]
		if !ok {
			pos = len(kind.Subcategories)
			index[row.CategorySlug] = pos
			kind.Subcategories = append(kind.Subcategories, SidebarCategory{
				SubcategoryName: row.CategoryName,
				SubcategorySlug: row.CategorySlug,
				Types:           []SidebarType{},
			})
		}
		if row.ProductType != "" {
			kind.Subcategories[pos].Types = append(kind.Subcategories[pos].Types,
				SidebarType{ProductTypeName: row.ProductType})
		}
	}

	return kind
}

// LatestProducts returns the newest products for the main page.
func (s *CatalogService) LatestProducts(limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 5
	}

	var products []models.Product
	if err := s.db.
		Preload("Category").
		Preload("SizeVariants").
		Order("created_at desc").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}
