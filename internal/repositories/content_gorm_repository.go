package repositories

import (
	"errors"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMBannerRepository is a GORM implementation of BannerRepository.
type GORMBannerRepository struct {
	gormStore[models.Banner]
}

// NewGORMBannerRepository creates a new instance of GORMBannerRepository.
func NewGORMBannerRepository(db *gorm.DB) *GORMBannerRepository {
	return &GORMBannerRepository{gormStore[models.Banner]{
		db:       db,
		resource: "banner",
		searchBy: "title",
		orderBy:  "sort_order asc, created_at desc",
	}}
}

// GORMHeroSectionRepository is a GORM implementation of HeroSectionRepository.
type GORMHeroSectionRepository struct {
	gormStore[models.HeroSection]
}

// NewGORMHeroSectionRepository creates a new instance of GORMHeroSectionRepository.
func NewGORMHeroSectionRepository(db *gorm.DB) *GORMHeroSectionRepository {
	return &GORMHeroSectionRepository{gormStore[models.HeroSection]{
		db:       db,
		resource: "hero section",
		searchBy: "heading",
		orderBy:  "sort_order asc, created_at desc",
	}}
}

// GORMClientRepository is a GORM implementation of ClientRepository.
type GORMClientRepository struct {
	gormStore[models.Client]
}

// NewGORMClientRepository creates a new instance of GORMClientRepository.
func NewGORMClientRepository(db *gorm.DB) *GORMClientRepository {
	return &GORMClientRepository{gormStore[models.Client]{
		db:       db,
		resource: "client",
		searchBy: "name",
		orderBy:  "sort_order asc, created_at desc",
	}}
}

// GORMPolicyRepository is a GORM implementation of PolicyRepository.
type GORMPolicyRepository struct {
	gormStore[models.Policy]
}

// NewGORMPolicyRepository creates a new instance of GORMPolicyRepository.
func NewGORMPolicyRepository(db *gorm.DB) *GORMPolicyRepository {
	return &GORMPolicyRepository{gormStore[models.Policy]{
		db:       db,
		resource: "policy",
		searchBy: "title",
		orderBy:  "created_at desc",
	}}
}

// ListByKind returns every version of the given policy kind, newest first.
func (r *GORMPolicyRepository) ListByKind(kind string) ([]models.Policy, error) {
	var policies []models.Policy
	err := r.db.Where("kind = ?", kind).Order("created_at desc").Find(&policies).Error
	if err != nil {
		return nil, apperrors.Internal("failed to list policies", err)
	}
	return policies, nil
}

// GetActive returns the single active version of the given kind.
func (r *GORMPolicyRepository) GetActive(kind string) (*models.Policy, error) {
	var policy models.Policy
	err := r.db.First(&policy, "kind = ? AND is_active = ?", kind, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no active " + kind + " policy")
		}
		return nil, apperrors.Internal("failed to get active policy", err)
	}
	return &policy, nil
}

// Activate flips the policy active and deactivates the other versions of the
// same kind in one transaction, keeping at most one active per kind.
func (r *GORMPolicyRepository) Activate(id string) (*models.Policy, error) {
	policy, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Policy{}).
			Where("kind = ? AND id <> ?", policy.Kind, policy.ID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Policy{}).
			Where("id = ?", policy.ID).
			Update("is_active", true).Error
	})
	if err != nil {
		return nil, apperrors.Internal("failed to activate policy", err)
	}
	policy.IsActive = true
	return policy, nil
}
