package services

import (
	"math"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/uploader"

	"github.com/google/uuid"
)

// ReviewInput is the payload for creating or updating a review.
type ReviewInput struct {
	ProductID        string `json:"product_id" form:"product_id"`
	AuthorName       string `json:"author_name" form:"author_name"`
	Rating           int    `json:"rating" form:"rating"`
	Text             string `json:"text" form:"text"`
	VerifiedPurchase bool   `json:"verified_purchase" form:"verified_purchase"`
	Image            []byte `json:"-"`
}

// ReviewService handles reviews and keeps the parent product's rating and
// review count in sync. The recompute runs inline within the same request;
// the aggregate is fully derived from the reviews table, so a failed
// recompute heals on the next review mutation for that product.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
	uploads     uploader.Uploader
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository, uploads uploader.Uploader) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		uploads:     uploads,
	}
}

// ListReviews returns one page of reviews with pagination meta.
func (s *ReviewService) ListReviews(q models.ListQuery) ([]models.Review, models.ListMeta, error) {
	q.Normalize()
	rows, total, err := s.reviewRepo.List(q)
	if err != nil {
		return nil, models.ListMeta{}, err
	}
	return rows, models.NewListMeta(q, total), nil
}

// ListProductReviews returns every review for a product.
func (s *ReviewService) ListProductReviews(productID string) ([]models.Review, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByProduct(productID)
}

// GetReview retrieves a review by id.
func (s *ReviewService) GetReview(id string) (*models.Review, error) {
	return s.reviewRepo.GetByID(id)
}

// CreateReview persists a review and recomputes the product aggregates.
func (s *ReviewService) CreateReview(in ReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperrors.BadRequest("rating must be between 1 and 5")
	}
	if _, err := s.productRepo.GetByID(in.ProductID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:               uuid.New().String(),
		ProductID:        in.ProductID,
		AuthorName:       in.AuthorName,
		Rating:           in.Rating,
		Text:             in.Text,
		VerifiedPurchase: in.VerifiedPurchase,
	}
	if in.Image != nil {
		url, err := s.uploads.Upload(in.Image, "reviews")
		if err != nil {
			return nil, apperrors.Internal("image upload failed", err)
		}
		review.ImageURL = url
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	if err := s.recomputeRating(review.ProductID); err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview applies a partial update and recomputes the product
// aggregates.
func (s *ReviewService) UpdateReview(id string, in ReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Rating != 0 {
		if in.Rating < 1 || in.Rating > 5 {
			return nil, apperrors.BadRequest("rating must be between 1 and 5")
		}
		review.Rating = in.Rating
	}
	if in.AuthorName != "" {
		review.AuthorName = in.AuthorName
	}
	if in.Text != "" {
		review.Text = in.Text
	}
	if in.Image != nil {
		url, err := s.uploads.Upload(in.Image, "reviews")
		if err != nil {
			return nil, apperrors.Internal("image upload failed", err)
		}
		review.ImageURL = url
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	if err := s.recomputeRating(review.ProductID); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes a review, recomputes the product aggregates and
// returns the review's prior state.
func (s *ReviewService) DeleteReview(id string) (*models.Review, error) {
	review, err := s.reviewRepo.Delete(id)
	if err != nil {
		return nil, err
	}
	if err := s.recomputeRating(review.ProductID); err != nil {
		return nil, err
	}
	return review, nil
}

// recomputeRating sets the product's rating to the mean of its reviews
// rounded to one decimal place, and its review count to the total. A product
// with no reviews goes back to 0/0.
func (s *ReviewService) recomputeRating(productID string) error {
	reviews, err := s.reviewRepo.ListByProduct(productID)
	if err != nil {
		return err
	}

	var rating float64
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rating
		}
		rating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}
	return s.productRepo.UpdateRating(productID, rating, len(reviews))
}
