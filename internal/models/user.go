package models

import "time"

// Roles a user account can hold.
const (
	RoleUser     = "user"
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User represents an account on the store, created either through local
// registration or on first OAuth login.
type User struct {
	ID              string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name            string     `json:"name" gorm:"type:varchar(100)"`
	Email           string     `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password        string     `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Role            string     `json:"role" gorm:"type:varchar(20);default:user"`
	IsActive        bool       `json:"is_active" gorm:"default:true"`
	Newsletter      bool       `json:"newsletter" gorm:"default:false"`
	Provider        string     `json:"provider,omitempty" gorm:"type:varchar(40)"`
	ProviderID      string     `json:"provider_id,omitempty" gorm:"type:varchar(100)"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	LastActiveAt    *time.Time `json:"last_active_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Sanitize clears the password hash. Services must call this before a user
// object crosses the service boundary.
func (u *User) Sanitize() *User {
	u.Password = ""
	return u
}
