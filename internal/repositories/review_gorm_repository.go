package repositories

import (
	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	gormStore[models.Review]
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{gormStore[models.Review]{
		db:       db,
		resource: "review",
		searchBy: "author_name",
		orderBy:  "created_at desc",
	}}
}

// ListByProduct returns every review referencing the product, newest first.
func (r *GORMReviewRepository) ListByProduct(productID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, apperrors.Internal("failed to list reviews for product", err)
	}
	return reviews, nil
}
