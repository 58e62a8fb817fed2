package models

import "time"

// Review is a customer review of a product. Every review mutation triggers a
// recomputation of the parent product's rating and review count.
type Review struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID        string    `json:"product_id" gorm:"type:varchar(36);index;not null"`
	AuthorName       string    `json:"author_name" gorm:"type:varchar(100)"`
	ImageURL         string    `json:"image_url" gorm:"type:varchar(255)"`
	Rating           int       `json:"rating" gorm:"not null"` // 1..5
	Text             string    `json:"text" gorm:"type:text"`
	VerifiedPurchase bool      `json:"verified_purchase" gorm:"default:false"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
