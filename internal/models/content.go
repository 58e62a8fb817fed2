package models

import "time"

// Banner is a promotional image slot on the storefront.
type Banner struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string    `json:"title" gorm:"type:varchar(140)"`
	Subtitle  string    `json:"subtitle" gorm:"type:varchar(200)"`
	ImageURL  string    `json:"image_url" gorm:"type:varchar(255)"`
	LinkURL   string    `json:"link_url" gorm:"type:varchar(255)"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HeroSection is a landing-page section with a heading and call to action.
type HeroSection struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Heading    string    `json:"heading" gorm:"type:varchar(140)"`
	Subheading string    `json:"subheading" gorm:"type:varchar(240)"`
	ImageURL   string    `json:"image_url" gorm:"type:varchar(255)"`
	CTAText    string    `json:"cta_text" gorm:"type:varchar(60)"`
	CTALink    string    `json:"cta_link" gorm:"type:varchar(255)"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	SortOrder  int       `json:"sort_order" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Client is a testimonial or partner logo entry.
type Client struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	Company   string    `json:"company" gorm:"type:varchar(100)"`
	ImageURL  string    `json:"image_url" gorm:"type:varchar(255)"`
	Quote     string    `json:"quote" gorm:"type:text"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Policy kinds. At most one policy per kind is active at a time.
const (
	PolicyKindPrivacy  = "privacy"
	PolicyKindWarranty = "warranty"
)

// Policy is a versioned legal text (privacy or warranty).
type Policy struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Kind      string    `json:"kind" gorm:"type:varchar(20);index;not null"`
	Title     string    `json:"title" gorm:"type:varchar(140)"`
	Body      string    `json:"body" gorm:"type:text"`
	IsActive  bool      `json:"is_active" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
