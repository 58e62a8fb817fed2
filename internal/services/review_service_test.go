package services_test

import (
	"testing"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/pkg/uploader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReviewRepository is a mock implementation of repositories.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) List(q models.ListQuery) ([]models.Review, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ListByProduct(productID string) ([]models.Review, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByID(id string) (*models.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(id string) (*models.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func TestReviewService_CreateReview_RecomputesRating(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := services.NewReviewService(reviewRepo, productRepo, &uploader.Fake{})

	productRepo.On("GetByID", "prod-1").Return(&models.Product{ID: "prod-1"}, nil).Once()
	reviewRepo.On("Create", mock.AnythingOfType("*models.Review")).Return(nil).Once()
	reviewRepo.On("ListByProduct", "prod-1").Return([]models.Review{
		{Rating: 5}, {Rating: 4}, {Rating: 4},
	}, nil).Once()
	// (5+4+4)/3 = 4.333..., rounded to one decimal place.
	productRepo.On("UpdateRating", "prod-1", 4.3, 3).Return(nil).Once()

	review, err := svc.CreateReview(services.ReviewInput{
		ProductID:  "prod-1",
		AuthorName: "Alice",
		Rating:     4,
		Text:       "Solid product",
	})
	assert.NoError(t, err)
	assert.Equal(t, "prod-1", review.ProductID)
	reviewRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestReviewService_CreateReview_RejectsBadRating(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := services.NewReviewService(reviewRepo, productRepo, &uploader.Fake{})

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.CreateReview(services.ReviewInput{ProductID: "prod-1", Rating: rating})
		assert.Error(t, err)
		assert.Equal(t, fiber.StatusBadRequest, apperrors.StatusOf(err))
	}
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestReviewService_CreateReview_UnknownProduct(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := services.NewReviewService(reviewRepo, productRepo, &uploader.Fake{})

	productRepo.On("GetByID", "missing").
		Return(nil, apperrors.NotFound("product not found")).Once()

	_, err := svc.CreateReview(services.ReviewInput{ProductID: "missing", Rating: 5})
	assert.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, apperrors.StatusOf(err))
}

func TestReviewService_CreateReview_UploadsImage(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	uploads := &uploader.Fake{}
	svc := services.NewReviewService(reviewRepo, productRepo, uploads)

	productRepo.On("GetByID", "prod-1").Return(&models.Product{ID: "prod-1"}, nil).Once()
	reviewRepo.On("Create", mock.AnythingOfType("*models.Review")).Return(nil).Once()
	reviewRepo.On("ListByProduct", "prod-1").Return([]models.Review{{Rating: 5}}, nil).Once()
	productRepo.On("UpdateRating", "prod-1", 5.0, 1).Return(nil).Once()

	review, err := svc.CreateReview(services.ReviewInput{
		ProductID: "prod-1",
		Rating:    5,
		Image:     []byte("fake-jpeg"),
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, review.ImageURL)
	assert.Equal(t, []string{"reviews"}, uploads.Uploads)
}

func TestReviewService_UpdateReview_RecomputesRating(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := services.NewReviewService(reviewRepo, productRepo, &uploader.Fake{})

	reviewRepo.On("GetByID", "rev-1").Return(&models.Review{
		ID: "rev-1", ProductID: "prod-1", Rating: 2,
	}, nil).Once()
	reviewRepo.On("Update", mock.MatchedBy(func(r *models.Review) bool {
		return r.Rating == 5
	})).Return(nil).Once()
	reviewRepo.On("ListByProduct", "prod-1").Return([]models.Review{
		{Rating: 5}, {Rating: 3},
	}, nil).Once()
	productRepo.On("UpdateRating", "prod-1", 4.0, 2).Return(nil).Once()

	review, err := svc.UpdateReview("rev-1", services.ReviewInput{Rating: 5})
	assert.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	reviewRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestReviewService_DeleteReview_LastReviewResetsRating(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := services.NewReviewService(reviewRepo, productRepo, &uploader.Fake{})

	reviewRepo.On("Delete", "rev-1").Return(&models.Review{
		ID: "rev-1", ProductID: "prod-1", Rating: 4,
	}, nil).Once()
	reviewRepo.On("ListByProduct", "prod-1").Return([]models.Review{}, nil).Once()
	productRepo.On("UpdateRating", "prod-1", 0.0, 0).Return(nil).Once()

	review, err := svc.DeleteReview("rev-1")
	assert.NoError(t, err)
	assert.Equal(t, "rev-1", review.ID)
	reviewRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}
