package repositories

import (
	"errors"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMCouponRepository is a GORM implementation of CouponRepository.
type GORMCouponRepository struct {
	gormStore[models.Coupon]
}

// NewGORMCouponRepository creates a new instance of GORMCouponRepository.
func NewGORMCouponRepository(db *gorm.DB) *GORMCouponRepository {
	return &GORMCouponRepository{gormStore[models.Coupon]{
		db:       db,
		resource: "coupon",
		searchBy: "code",
		orderBy:  "created_at desc",
	}}
}

// GetByCode retrieves a coupon by its code.
func (r *GORMCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.First(&coupon, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("coupon not found")
		}
		return nil, apperrors.Internal("failed to get coupon by code", err)
	}
	return &coupon, nil
}

// CodeExists reports whether the coupon code is already taken.
func (r *GORMCouponRepository) CodeExists(code string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Coupon{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, apperrors.Internal("failed to check coupon code", err)
	}
	return count > 0, nil
}
