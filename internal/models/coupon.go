package models

import "time"

// Coupon discount types.
const (
	DiscountTypeFixed   = "fixed"
	DiscountTypePercent = "percent"
)

// Coupon is a discount code. Codes are unique across the collection.
type Coupon struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Code          string     `json:"code" gorm:"uniqueIndex;type:varchar(40);not null"`
	DiscountType  string     `json:"discount_type" gorm:"type:varchar(20);default:fixed"`
	DiscountValue float64    `json:"discount_value" gorm:"type:decimal(12,2)"`
	MinOrderValue float64    `json:"min_order_value" gorm:"type:decimal(12,2);default:0"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Expired reports whether the coupon's expiry has passed at the given time.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// DiscountFor computes the discount the coupon grants on a subtotal. The
// discount never exceeds the subtotal.
func (c *Coupon) DiscountFor(subtotal float64) float64 {
	var d float64
	switch c.DiscountType {
	case DiscountTypePercent:
		d = subtotal * c.DiscountValue / 100
	default:
		d = c.DiscountValue
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}
