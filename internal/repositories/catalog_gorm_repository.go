package repositories

import (
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	gormStore[models.Category]
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{gormStore[models.Category]{
		db:       db,
		resource: "category",
		searchBy: "name",
		orderBy:  "sort_order asc, created_at desc",
	}}
}

// GORMSubcategoryRepository is a GORM implementation of SubcategoryRepository.
type GORMSubcategoryRepository struct {
	gormStore[models.Subcategory]
}

// NewGORMSubcategoryRepository creates a new instance of GORMSubcategoryRepository.
func NewGORMSubcategoryRepository(db *gorm.DB) *GORMSubcategoryRepository {
	return &GORMSubcategoryRepository{gormStore[models.Subcategory]{
		db:       db,
		resource: "subcategory",
		searchBy: "name",
		orderBy:  "sort_order asc, created_at desc",
	}}
}

// GORMBrandRepository is a GORM implementation of BrandRepository.
type GORMBrandRepository struct {
	gormStore[models.Brand]
}

// NewGORMBrandRepository creates a new instance of GORMBrandRepository.
func NewGORMBrandRepository(db *gorm.DB) *GORMBrandRepository {
	return &GORMBrandRepository{gormStore[models.Brand]{
		db:       db,
		resource: "brand",
		searchBy: "name",
		orderBy:  "sort_order asc, created_at desc",
	}}
}
