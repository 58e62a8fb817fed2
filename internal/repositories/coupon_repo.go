package repositories

import "storefront/internal/models"

// CouponRepository defines the interface for coupon data access.
type CouponRepository interface {
	List(q models.ListQuery) ([]models.Coupon, int64, error)
	GetByID(id string) (*models.Coupon, error)
	GetByCode(code string) (*models.Coupon, error)
	CodeExists(code string) (bool, error)
	Create(coupon *models.Coupon) error
	Update(coupon *models.Coupon) error
	Delete(id string) (*models.Coupon, error)
}
