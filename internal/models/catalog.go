package models

// Category groups products of one kind into a browsable subcategory
// (spruces, pines, firs and so on).
type Category struct {
	BaseModel
	Name     string    `json:"name"`
	Slug     string    `gorm:"uniqueIndex" json:"slug"`
	Products []Product `json:"products,omitempty"`
}
