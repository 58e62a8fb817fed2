package services

import (
	"strings"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
)

// CouponInput is the payload for creating or updating a coupon.
type CouponInput struct {
	Code          string     `json:"code"`
	DiscountType  string     `json:"discount_type"`
	DiscountValue *float64   `json:"discount_value,omitempty"`
	MinOrderValue *float64   `json:"min_order_value,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	IsActive      *bool      `json:"is_active,omitempty"`
}

// CouponService handles discount coupons.
type CouponService struct {
	repo repositories.CouponRepository
}

// NewCouponService creates a new CouponService.
func NewCouponService(repo repositories.CouponRepository) *CouponService {
	return &CouponService{repo: repo}
}

// ListCoupons returns one page of coupons with pagination meta.
func (s *CouponService) ListCoupons(q models.ListQuery) ([]models.Coupon, models.ListMeta, error) {
	q.Normalize()
	rows, total, err := s.repo.List(q)
	if err != nil {
		return nil, models.ListMeta{}, err
	}
	return rows, models.NewListMeta(q, total), nil
}

// GetCoupon retrieves a coupon by id.
func (s *CouponService) GetCoupon(id string) (*models.Coupon, error) {
	return s.repo.GetByID(id)
}

// ValidateCoupon checks a code against a subtotal and returns the coupon and
// the discount it would grant.
func (s *CouponService) ValidateCoupon(code string, subtotal float64) (*models.Coupon, float64, error) {
	coupon, err := s.repo.GetByCode(normalizeCode(code))
	if err != nil {
		return nil, 0, err
	}
	if !coupon.IsActive || coupon.Expired(time.Now()) {
		return nil, 0, apperrors.BadRequest("coupon is no longer valid")
	}
	if subtotal < coupon.MinOrderValue {
		return nil, 0, apperrors.BadRequest("order subtotal below coupon minimum")
	}
	return coupon, coupon.DiscountFor(subtotal), nil
}

// CreateCoupon persists a coupon, rejecting duplicate codes with Conflict.
func (s *CouponService) CreateCoupon(in CouponInput) (*models.Coupon, error) {
	code := normalizeCode(in.Code)
	if code == "" {
		return nil, apperrors.BadRequest("code is required")
	}
	if in.DiscountValue == nil || *in.DiscountValue <= 0 {
		return nil, apperrors.BadRequest("discount_value must be greater than zero")
	}
	taken, err := s.repo.CodeExists(code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Conflict("coupon code '" + code + "' already exists")
	}

	coupon := &models.Coupon{
		ID:            uuid.New().String(),
		Code:          code,
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: *in.DiscountValue,
		ExpiresAt:     in.ExpiresAt,
		IsActive:      true,
	}
	if in.DiscountType != "" {
		if in.DiscountType != models.DiscountTypeFixed && in.DiscountType != models.DiscountTypePercent {
			return nil, apperrors.BadRequest("unknown discount type: " + in.DiscountType)
		}
		coupon.DiscountType = in.DiscountType
	}
	if in.MinOrderValue != nil {
		coupon.MinOrderValue = *in.MinOrderValue
	}
	if in.IsActive != nil {
		coupon.IsActive = *in.IsActive
	}
	if err := s.repo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// UpdateCoupon applies a partial update. The code itself is immutable once
// issued; orders reference coupons by code.
func (s *CouponService) UpdateCoupon(id string, in CouponInput) (*models.Coupon, error) {
	coupon, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.DiscountType != "" {
		if in.DiscountType != models.DiscountTypeFixed && in.DiscountType != models.DiscountTypePercent {
			return nil, apperrors.BadRequest("unknown discount type: " + in.DiscountType)
		}
		coupon.DiscountType = in.DiscountType
	}
	if in.DiscountValue != nil {
		coupon.DiscountValue = *in.DiscountValue
	}
	if in.MinOrderValue != nil {
		coupon.MinOrderValue = *in.MinOrderValue
	}
	if in.ExpiresAt != nil {
		coupon.ExpiresAt = in.ExpiresAt
	}
	if in.IsActive != nil {
		coupon.IsActive = *in.IsActive
	}
	if err := s.repo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// DeleteCoupon removes a coupon and returns its prior state.
func (s *CouponService) DeleteCoupon(id string) (*models.Coupon, error) {
	return s.repo.Delete(id)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
