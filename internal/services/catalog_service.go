package services

import (
	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/slug"
	"storefront/pkg/uploader"

	"github.com/google/uuid"
)

// CatalogItemInput is the payload for creating or updating a category,
// subcategory or brand. On update, zero-valued fields leave the stored value
// untouched; a new image buffer triggers a re-upload while nil retains the
// prior URL.
type CatalogItemInput struct {
	Name       string `json:"name" form:"name"`
	CategoryID string `json:"category_id,omitempty" form:"category_id"` // subcategories only
	SortOrder  *int   `json:"sort_order,omitempty" form:"sort_order"`
	IsActive   *bool  `json:"is_active,omitempty" form:"is_active"`
	Image      []byte `json:"-"`
}

// CatalogService handles the taxonomy resources: categories, subcategories
// and brands.
type CatalogService struct {
	categoryRepo    repositories.CategoryRepository
	subcategoryRepo repositories.SubcategoryRepository
	brandRepo       repositories.BrandRepository
	uploads         uploader.Uploader
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	categoryRepo repositories.CategoryRepository,
	subcategoryRepo repositories.SubcategoryRepository,
	brandRepo repositories.BrandRepository,
	uploads uploader.Uploader,
) *CatalogService {
	return &CatalogService{
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		brandRepo:       brandRepo,
		uploads:         uploads,
	}
}

func (s *CatalogService) uploadImage(data []byte, folder string) (string, error) {
	url, err := s.uploads.Upload(data, folder)
	if err != nil {
		return "", apperrors.Internal("image upload failed", err)
	}
	return url, nil
}

// --- Categories ---

// ListCategories returns one page of categories with pagination meta.
func (s *CatalogService) ListCategories(q models.ListQuery) ([]models.Category, models.ListMeta, error) {
	q.Normalize()
	rows, total, err := s.categoryRepo.List(q)
	if err != nil {
		return nil, models.ListMeta{}, err
	}
	return rows, models.NewListMeta(q, total), nil
}

// GetCategory retrieves a category by id.
func (s *CatalogService) GetCategory(id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// GetCategoryBySlug retrieves a category by slug.
func (s *CatalogService) GetCategoryBySlug(sl string) (*models.Category, error) {
	return s.categoryRepo.GetBySlug(sl)
}

// CreateCategory derives a unique slug from the name, uploads the image when
// one is supplied and persists the category.
func (s *CatalogService) CreateCategory(in CatalogItemInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, apperrors.BadRequest("name is required")
	}
	sl, err := slug.Unique(in.Name, s.categoryRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:       uuid.New().String(),
		Name:     in.Name,
		Slug:     sl,
		IsActive: true,
	}
	if in.SortOrder != nil {
		category.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	if in.Image != nil {
		if category.ImageURL, err = s.uploadImage(in.Image, "categories"); err != nil {
			return nil, err
		}
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory applies a partial update, re-deriving the slug only when the
// name changed.
func (s *CatalogService) UpdateCategory(id string, in CatalogItemInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" && in.Name != category.Name {
		category.Name = in.Name
		if category.Slug, err = slug.Unique(in.Name, s.categoryRepo.SlugExists); err != nil {
			return nil, err
		}
	}
	if in.SortOrder != nil {
		category.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	if in.Image != nil {
		if category.ImageURL, err = s.uploadImage(in.Image, "categories"); err != nil {
			return nil, err
		}
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category and returns its prior state.
func (s *CatalogService) DeleteCategory(id string) (*models.Category, error) {
	return s.categoryRepo.Delete(id)
}

// --- Subcategories ---

// ListSubcategories returns one page of subcategories with pagination meta.
func (s *CatalogService) ListSubcategories(q models.ListQuery) ([]models.Subcategory, models.ListMeta, error) {
	q.Normalize()
	rows, total, err := s.subcategoryRepo.List(q)
	if err != nil {
		return nil, models.ListMeta{}, err
	}
	return rows, models.NewListMeta(q, total), nil
}

// GetSubcategory retrieves a subcategory by id.
func (s *CatalogService) GetSubcategory(id string) (*models.Subcategory, error) {
	return s.subcategoryRepo.GetByID(id)
}

// GetSubcategoryBySlug retrieves a subcategory by slug.
func (s *CatalogService) GetSubcategoryBySlug(sl string) (*models.Subcategory, error) {
	return s.subcategoryRepo.GetBySlug(sl)
}

// CreateSubcategory persists a subcategory under an existing category.
func (s *CatalogService) CreateSubcategory(in CatalogItemInput) (*models.Subcategory, error) {
	if in.Name == "" {
		return nil, apperrors.BadRequest("name is required")
	}
	if in.CategoryID == "" {
		return nil, apperrors.BadRequest("category_id is required")
	}
	if _, err := s.categoryRepo.GetByID(in.CategoryID); err != nil {
		return nil, err
	}
	sl, err := slug.Unique(in.Name, s.subcategoryRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	subcategory := &models.Subcategory{
		ID:         uuid.New().String(),
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Slug:       sl,
		IsActive:   true,
	}
	if in.SortOrder != nil {
		subcategory.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		subcategory.IsActive = *in.IsActive
	}
	if in.Image != nil {
		if subcategory.ImageURL, err = s.uploadImage(in.Image, "subcategories"); err != nil {
			return nil, err
		}
	}
	if err := s.subcategoryRepo.Create(subcategory); err != nil {
		return nil, err
	}
	return subcategory, nil
}

// UpdateSubcategory applies a partial update, re-deriving the slug only when
// the name changed.
func (s *CatalogService) UpdateSubcategory(id string, in CatalogItemInput) (*models.Subcategory, error) {
	subcategory, err := s.subcategoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" && in.Name != subcategory.Name {
		subcategory.Name = in.Name
		if subcategory.Slug, err = slug.Unique(in.Name, s.subcategoryRepo.SlugExists); err != nil {
			return nil, err
		}
	}
	if in.CategoryID != "" {
		if _, err := s.categoryRepo.GetByID(in.CategoryID); err != nil {
			return nil, err
		}
		subcategory.CategoryID = in.CategoryID
	}
	if in.SortOrder != nil {
		subcategory.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		subcategory.IsActive = *in.IsActive
	}
	if in.Image != nil {
		if subcategory.ImageURL, err = s.uploadImage(in.Image, "subcategories"); err != nil {
			return nil, err
		}
	}
	if err := s.subcategoryRepo.Update(subcategory); err != nil {
		return nil, err
	}
	return subcategory, nil
}

// DeleteSubcategory removes a subcategory and returns its prior state.
func (s *CatalogService) DeleteSubcategory(id string) (*models.Subcategory, error) {
	return s.subcategoryRepo.Delete(id)
}

// --- Brands ---

// ListBrands returns one page of brands with pagination meta.
func (s *CatalogService) ListBrands(q models.ListQuery) ([]models.Brand, models.ListMeta, error) {
	q.Normalize()
	rows, total, err := s.brandRepo.List(q)
	if err != nil {
		return nil, models.ListMeta{}, err
	}
	return rows, models.NewListMeta(q, total), nil
}

// GetBrand retrieves a brand by id.
func (s *CatalogService) GetBrand(id string) (*models.Brand, error) {
	return s.brandRepo.GetByID(id)
}

// GetBrandBySlug retrieves a brand by slug.
func (s *CatalogService) GetBrandBySlug(sl string) (*models.Brand, error) {
	return s.brandRepo.GetBySlug(sl)
}

// CreateBrand derives a unique slug and persists the brand.
func (s *CatalogService) CreateBrand(in CatalogItemInput) (*models.Brand, error) {
	if in.Name == "" {
		return nil, apperrors.BadRequest("name is required")
	}
	sl, err := slug.Unique(in.Name, s.brandRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	brand := &models.Brand{
		ID:       uuid.New().String(),
		Name:     in.Name,
		Slug:     sl,
		IsActive: true,
	}
	if in.SortOrder != nil {
		brand.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		brand.IsActive = *in.IsActive
	}
	if in.Image != nil {
		if brand.ImageURL, err = s.uploadImage(in.Image, "brands"); err != nil {
			return nil, err
		}
	}
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// UpdateBrand applies a partial update, re-deriving the slug only when the
// name changed.
func (s *CatalogService) UpdateBrand(id string, in CatalogItemInput) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" && in.Name != brand.Name {
		brand.Name = in.Name
		if brand.Slug, err = slug.Unique(in.Name, s.brandRepo.SlugExists); err != nil {
			return nil, err
		}
	}
	if in.SortOrder != nil {
		brand.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		brand.IsActive = *in.IsActive
	}
	if in.Image != nil {
		if brand.ImageURL, err = s.uploadImage(in.Image, "brands"); err != nil {
			return nil, err
		}
	}
	if err := s.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// DeleteBrand removes a brand and returns its prior state.
func (s *CatalogService) DeleteBrand(id string) (*models.Brand, error) {
	return s.brandRepo.Delete(id)
}
