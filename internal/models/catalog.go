package models

import "time"

// Category is a top-level product grouping. The slug is derived from the name
// and recomputed whenever the name changes.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(140)"`
	ImageURL  string    `json:"image_url" gorm:"type:varchar(255)"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subcategory belongs to a Category.
type Subcategory struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CategoryID string    `json:"category_id" gorm:"type:varchar(36);index"`
	Name       string    `json:"name" gorm:"type:varchar(100);not null"`
	Slug       string    `json:"slug" gorm:"uniqueIndex;type:varchar(140)"`
	ImageURL   string    `json:"image_url" gorm:"type:varchar(255)"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	SortOrder  int       `json:"sort_order" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Brand is a manufacturer label products reference by id.
type Brand struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(140)"`
	ImageURL  string    `json:"image_url" gorm:"type:varchar(255)"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
