package repositories

import "storefront/internal/models"

// BannerRepository defines the interface for banner data access.
type BannerRepository interface {
	List(q models.ListQuery) ([]models.Banner, int64, error)
	GetByID(id string) (*models.Banner, error)
	Create(banner *models.Banner) error
	Update(banner *models.Banner) error
	Delete(id string) (*models.Banner, error)
}

// HeroSectionRepository defines the interface for hero section data access.
type HeroSectionRepository interface {
	List(q models.ListQuery) ([]models.HeroSection, int64, error)
	GetByID(id string) (*models.HeroSection, error)
	Create(hero *models.HeroSection) error
	Update(hero *models.HeroSection) error
	Delete(id string) (*models.HeroSection, error)
}

// ClientRepository defines the interface for client/testimonial data access.
type ClientRepository interface {
	List(q models.ListQuery) ([]models.Client, int64, error)
	GetByID(id string) (*models.Client, error)
	Create(client *models.Client) error
	Update(client *models.Client) error
	Delete(id string) (*models.Client, error)
}

// PolicyRepository defines the interface for policy data access.
type PolicyRepository interface {
	ListByKind(kind string) ([]models.Policy, error)
	GetByID(id string) (*models.Policy, error)
	GetActive(kind string) (*models.Policy, error)
	Create(policy *models.Policy) error
	Update(policy *models.Policy) error
	Delete(id string) (*models.Policy, error)
	// Activate marks the policy active and deactivates every other version of
	// the same kind in one transaction.
	Activate(id string) (*models.Policy, error)
}
