package repositories

import "storefront/internal/models"

// ProductListQuery extends the uniform list filters with catalog-specific ones.
type ProductListQuery struct {
	models.ListQuery
	CategoryID    string
	SubcategoryID string
	BrandID       string
	PublishedOnly bool
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	ListProducts(q ProductListQuery) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	SlugExists(slug string) (bool, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) (*models.Product, error)
	// UpdateRating writes the derived rating aggregates without touching any
	// other product field.
	UpdateRating(productID string, rating float64, reviewCount int) error
}
