package models

import "time"

// Product represents a product in the store. Rating and ReviewCount are
// derived aggregates maintained by the review service and are never accepted
// from a client payload.
type Product struct {
	ID                string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name              string            `json:"name" gorm:"type:varchar(180);not null"`
	Slug              string            `json:"slug" gorm:"uniqueIndex;type:varchar(200)"`
	Description       string            `json:"description" gorm:"type:text"`
	Price             float64           `json:"price" gorm:"type:decimal(12,2);not null"`
	PreviousPrice     float64           `json:"previous_price" gorm:"type:decimal(12,2);default:0"`
	Stock             int               `json:"stock" gorm:"default:0"`
	LowStockThreshold int               `json:"low_stock_threshold" gorm:"default:5"`
	CategoryID        string            `json:"category_id" gorm:"type:varchar(36);index"`
	SubcategoryID     string            `json:"subcategory_id" gorm:"type:varchar(36);index"`
	BrandID           string            `json:"brand_id" gorm:"type:varchar(36);index"`
	ImageURL          string            `json:"image_url" gorm:"type:varchar(255)"`
	Gallery           []string          `json:"gallery" gorm:"serializer:json"`
	Features          []ProductFeature  `json:"features" gorm:"serializer:json"`
	Specifications    map[string]string `json:"specifications" gorm:"serializer:json"`
	Rating            float64           `json:"rating" gorm:"type:decimal(3,1);default:0"`
	ReviewCount       int               `json:"review_count" gorm:"default:0"`
	IsPublished       bool              `json:"is_published" gorm:"default:false"`
	SEOTitle          string            `json:"seo_title" gorm:"type:varchar(180)"`
	SEODescription    string            `json:"seo_description" gorm:"type:varchar(300)"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ProductFeature is one highlighted feature block on a product page.
type ProductFeature struct {
	Header      string   `json:"header"`
	Subsections []string `json:"subsections,omitempty"`
}

// LowStock reports whether the stock count has fallen to the threshold.
func (p *Product) LowStock() bool {
	return p.Stock <= p.LowStockThreshold
}
