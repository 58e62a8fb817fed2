package repositories

import (
	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	gormStore[models.Product]
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{gormStore[models.Product]{
		db:       db,
		resource: "product",
		searchBy: "name",
		orderBy:  "created_at desc",
	}}
}

// ListProducts applies the uniform filters plus taxonomy references and the
// published flag.
func (r *GORMProductRepository) ListProducts(q ProductListQuery) ([]models.Product, int64, error) {
	q.Normalize()

	scope := func() *gorm.DB {
		tx := r.listScope(q.ListQuery)
		if q.CategoryID != "" {
			tx = tx.Where("category_id = ?", q.CategoryID)
		}
		if q.SubcategoryID != "" {
			tx = tx.Where("subcategory_id = ?", q.SubcategoryID)
		}
		if q.BrandID != "" {
			tx = tx.Where("brand_id = ?", q.BrandID)
		}
		if q.PublishedOnly {
			tx = tx.Where("is_published = ?", true)
		}
		return tx
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count product list", err)
	}

	var products []models.Product
	err := scope().
		Order(r.orderBy).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&products).Error
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list products", err)
	}
	return products, total, nil
}

// UpdateRating writes only the derived aggregate columns.
func (r *GORMProductRepository) UpdateRating(productID string, rating float64, reviewCount int) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]any{"rating": rating, "review_count": reviewCount})
	if res.Error != nil {
		return apperrors.Internal("failed to update product rating", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product not found")
	}
	return nil
}
