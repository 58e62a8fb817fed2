package repositories

import (
	"time"

	"storefront/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	EmailExists(email string) (bool, error)
	Update(user *models.User) error
	TouchLastActive(id string, at time.Time) error
}
