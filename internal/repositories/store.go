package repositories

import (
	"errors"
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// gormStore implements the uniform list/get/create/update/delete shape shared
// by every resource. Entity repositories embed it and add their own queries.
type gormStore[T any] struct {
	db       *gorm.DB
	resource string // name used in error messages, e.g. "category"
	searchBy string // column the list search matches against
	orderBy  string // default sort for list queries
}

func (s *gormStore[T]) listScope(q models.ListQuery) *gorm.DB {
	var zero T
	tx := s.db.Model(&zero)
	if q.Search != "" {
		tx = tx.Where("LOWER("+s.searchBy+") LIKE ?", "%"+strings.ToLower(q.Search)+"%")
	}
	if q.IsActive != nil {
		tx = tx.Where("is_active = ?", *q.IsActive)
	}
	return tx
}

// List applies the search/active filters, counts the full match set and
// returns one page of rows.
func (s *gormStore[T]) List(q models.ListQuery) ([]T, int64, error) {
	q.Normalize()

	var total int64
	if err := s.listScope(q).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count "+s.resource+" list", err)
	}

	var rows []T
	err := s.listScope(q).
		Order(s.orderBy).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list "+s.resource, err)
	}
	return rows, total, nil
}

// GetByID returns the row with the given id or a NotFound error.
func (s *gormStore[T]) GetByID(id string) (*T, error) {
	var row T
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(s.resource + " not found")
		}
		return nil, apperrors.Internal("failed to get "+s.resource, err)
	}
	return &row, nil
}

// GetBySlug returns the row with the given slug or a NotFound error.
func (s *gormStore[T]) GetBySlug(slug string) (*T, error) {
	var row T
	if err := s.db.First(&row, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(s.resource + " not found")
		}
		return nil, apperrors.Internal("failed to get "+s.resource+" by slug", err)
	}
	return &row, nil
}

// SlugExists reports whether a slug is already taken in this collection.
func (s *gormStore[T]) SlugExists(slug string) (bool, error) {
	var zero T
	var count int64
	if err := s.db.Model(&zero).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, apperrors.Internal("failed to check "+s.resource+" slug", err)
	}
	return count > 0, nil
}

// Create inserts the row.
func (s *gormStore[T]) Create(row *T) error {
	if err := s.db.Create(row).Error; err != nil {
		return apperrors.Internal("failed to create "+s.resource, err)
	}
	return nil
}

// Update saves all fields of the row. Save does not report ErrRecordNotFound
// for a missing row, so the affected-row count is checked instead.
func (s *gormStore[T]) Update(row *T) error {
	res := s.db.Save(row)
	if res.Error != nil {
		return apperrors.Internal("failed to update "+s.resource, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(s.resource + " not found")
	}
	return nil
}

// Delete removes the row with the given id and returns its prior state.
func (s *gormStore[T]) Delete(id string) (*T, error) {
	row, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(row, "id = ?", id).Error; err != nil {
		return nil, apperrors.Internal("failed to delete "+s.resource, err)
	}
	return row, nil
}
