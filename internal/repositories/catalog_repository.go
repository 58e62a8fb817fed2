package repositories

import "storefront/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List(q models.ListQuery) ([]models.Category, int64, error)
	GetByID(id string) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	SlugExists(slug string) (bool, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id string) (*models.Category, error)
}

// SubcategoryRepository defines the interface for subcategory data access.
type SubcategoryRepository interface {
	List(q models.ListQuery) ([]models.Subcategory, int64, error)
	GetByID(id string) (*models.Subcategory, error)
	GetBySlug(slug string) (*models.Subcategory, error)
	SlugExists(slug string) (bool, error)
	Create(subcategory *models.Subcategory) error
	Update(subcategory *models.Subcategory) error
	Delete(id string) (*models.Subcategory, error)
}

// BrandRepository defines the interface for brand data access.
type BrandRepository interface {
	List(q models.ListQuery) ([]models.Brand, int64, error)
	GetByID(id string) (*models.Brand, error)
	GetBySlug(slug string) (*models.Brand, error)
	SlugExists(slug string) (bool, error)
	Create(brand *models.Brand) error
	Update(brand *models.Brand) error
	Delete(id string) (*models.Brand, error)
}
