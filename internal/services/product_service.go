package services

import (
	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/slug"
	"storefront/pkg/uploader"

	"github.com/google/uuid"
)

// ProductInput is the payload for creating or updating a product. Rating and
// review count are derived aggregates and deliberately absent. On update,
// nil pointer fields leave the stored value untouched.
type ProductInput struct {
	Name              string                  `json:"name" form:"name"`
	Description       *string                 `json:"description,omitempty" form:"description"`
	Price             *float64                `json:"price,omitempty" form:"price"`
	PreviousPrice     *float64                `json:"previous_price,omitempty" form:"previous_price"`
	Stock             *int                    `json:"stock,omitempty" form:"stock"`
	LowStockThreshold *int                    `json:"low_stock_threshold,omitempty" form:"low_stock_threshold"`
	CategoryID        string                  `json:"category_id,omitempty" form:"category_id"`
	SubcategoryID     string                  `json:"subcategory_id,omitempty" form:"subcategory_id"`
	BrandID           string                  `json:"brand_id,omitempty" form:"brand_id"`
	Features          []models.ProductFeature `json:"features,omitempty"`
	Specifications    map[string]string       `json:"specifications,omitempty"`
	IsPublished       *bool                   `json:"is_published,omitempty" form:"is_published"`
	SEOTitle          *string                 `json:"seo_title,omitempty" form:"seo_title"`
	SEODescription    *string                 `json:"seo_description,omitempty" form:"seo_description"`
	Image             []byte                  `json:"-"`
	GalleryImages     [][]byte                `json:"-"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo    repositories.ProductRepository
	uploads uploader.Uploader
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, uploads uploader.Uploader) *ProductService {
	return &ProductService{repo: repo, uploads: uploads}
}

// ListProducts returns one page of products with pagination meta.
func (s *ProductService) ListProducts(q repositories.ProductListQuery) ([]models.Product, models.ListMeta, error) {
	q.Normalize()
	rows, total, err := s.repo.ListProducts(q)
	if err != nil {
		return nil, models.ListMeta{}, err
	}
	return rows, models.NewListMeta(q.ListQuery, total), nil
}

// GetProduct retrieves a product by id.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetProductBySlug retrieves a product by slug.
func (s *ProductService) GetProductBySlug(sl string) (*models.Product, error) {
	return s.repo.GetBySlug(sl)
}

// CreateProduct derives a unique slug from the name, uploads the main image
// and gallery when supplied and persists the product.
func (s *ProductService) CreateProduct(in ProductInput) (*models.Product, error) {
	if in.Name == "" {
		return nil, apperrors.BadRequest("name is required")
	}
	if in.Price == nil || *in.Price <= 0 {
		return nil, apperrors.BadRequest("price must be greater than zero")
	}

	sl, err := slug.Unique(in.Name, s.repo.SlugExists)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Slug:              sl,
		Price:             *in.Price,
		CategoryID:        in.CategoryID,
		SubcategoryID:     in.SubcategoryID,
		BrandID:           in.BrandID,
		Features:          in.Features,
		Specifications:    in.Specifications,
		LowStockThreshold: 5,
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.PreviousPrice != nil {
		product.PreviousPrice = *in.PreviousPrice
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.LowStockThreshold != nil {
		product.LowStockThreshold = *in.LowStockThreshold
	}
	if in.IsPublished != nil {
		product.IsPublished = *in.IsPublished
	}
	if in.SEOTitle != nil {
		product.SEOTitle = *in.SEOTitle
	}
	if in.SEODescription != nil {
		product.SEODescription = *in.SEODescription
	}

	if err := s.attachImages(product, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies a partial update, re-deriving the slug only when the
// name changed and re-uploading media only when new binaries are supplied.
func (s *ProductService) UpdateProduct(id string, in ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" && in.Name != product.Name {
		product.Name = in.Name
		if product.Slug, err = slug.Unique(in.Name, s.repo.SlugExists); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, apperrors.BadRequest("price must be greater than zero")
		}
		product.PreviousPrice = product.Price
		product.Price = *in.Price
	}
	if in.PreviousPrice != nil {
		product.PreviousPrice = *in.PreviousPrice
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.LowStockThreshold != nil {
		product.LowStockThreshold = *in.LowStockThreshold
	}
	if in.CategoryID != "" {
		product.CategoryID = in.CategoryID
	}
	if in.SubcategoryID != "" {
		product.SubcategoryID = in.SubcategoryID
	}
	if in.BrandID != "" {
		product.BrandID = in.BrandID
	}
	if in.Features != nil {
		product.Features = in.Features
	}
	if in.Specifications != nil {
		product.Specifications = in.Specifications
	}
	if in.IsPublished != nil {
		product.IsPublished = *in.IsPublished
	}
	if in.SEOTitle != nil {
		product.SEOTitle = *in.SEOTitle
	}
	if in.SEODescription != nil {
		product.SEODescription = *in.SEODescription
	}

	if err := s.attachImages(product, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) attachImages(product *models.Product, in ProductInput) error {
	if in.Image != nil {
		url, err := s.uploads.Upload(in.Image, "products")
		if err != nil {
			return apperrors.Internal("image upload failed", err)
		}
		product.ImageURL = url
	}
	if len(in.GalleryImages) > 0 {
		gallery := make([]string, 0, len(in.GalleryImages))
		for _, img := range in.GalleryImages {
			url, err := s.uploads.Upload(img, "products/gallery")
			if err != nil {
				return apperrors.Internal("gallery upload failed", err)
			}
			gallery = append(gallery, url)
		}
		product.Gallery = gallery
	}
	return nil
}

// DeleteProduct removes a product and returns its prior state.
func (s *ProductService) DeleteProduct(id string) (*models.Product, error) {
	return s.repo.Delete(id)
}
