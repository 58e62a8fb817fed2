package services_test

import (
	"testing"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListProducts(q repositories.ProductListQuery) ([]models.Product, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(slug string) (*models.Product, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) SlugExists(slug string) (bool, error) {
	args := m.Called(slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateRating(productID string, rating float64, reviewCount int) error {
	args := m.Called(productID, rating, reviewCount)
	return args.Error(0)
}

// MockCouponRepository is a mock implementation of repositories.CouponRepository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) List(q models.ListQuery) ([]models.Coupon, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Coupon), args.Get(1).(int64), args.Error(2)
}

func (m *MockCouponRepository) GetByID(id string) (*models.Coupon, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) CodeExists(code string) (bool, error) {
	args := m.Called(code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCouponRepository) Create(coupon *models.Coupon) error {
	args := m.Called(coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) Update(coupon *models.Coupon) error {
	args := m.Called(coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) Delete(id string) (*models.Coupon, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

// MockPublisher records published order events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderEvent(eventType string, payload any) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}

func orderInput(items ...services.OrderItemInput) services.OrderInput {
	return services.OrderInput{
		CustomerName:   "Test Customer",
		Email:          "customer@example.com",
		Phone:          "01700000000",
		Address:        "123 Test Street",
		ShippingMethod: models.ShippingHomeDelivery,
		PaymentMethod:  models.PaymentCashOnDelivery,
		Items:          items,
	}
}

func TestOrderService_PlaceOrder_RecomputesTotals(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	couponRepo := new(MockCouponRepository)
	mq := new(MockPublisher)
	svc := services.NewOrderService(orderRepo, productRepo, couponRepo, mq)

	productRepo.On("GetByID", "prod-1").Return(&models.Product{
		ID: "prod-1", Name: "Widget", Price: 19.99, Stock: 10, IsPublished: true,
	}, nil).Once()
	productRepo.On("GetByID", "prod-2").Return(&models.Product{
		ID: "prod-2", Name: "Gadget", Price: 5.50, Stock: 3, IsPublished: true,
	}, nil).Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	mq.On("PublishOrderEvent", "order.created", mock.Anything).Return(nil).Once()

	in := orderInput(
		services.OrderItemInput{ProductID: "prod-1", Quantity: 2},
		services.OrderItemInput{ProductID: "prod-2", Quantity: 1},
	)
	in.DeliveryCharge = 4.00

	order, err := svc.PlaceOrder(in, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 45.48, order.Subtotal)
	assert.Equal(t, 49.48, order.TotalPayable)
	assert.Equal(t, models.OrderStatusPlaced, order.OrderStatus)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Len(t, order.Items, 2)
	// Unit prices come from the catalog, captured at placement time.
	assert.Equal(t, 19.99, order.Items[0].Price)
	assert.False(t, order.IsGuest())

	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	mq.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	svc := services.NewOrderService(orderRepo, productRepo, new(MockCouponRepository), nil)

	productRepo.On("GetByID", "prod-1").Return(&models.Product{
		ID: "prod-1", Name: "Widget", Price: 19.99, Stock: 1, IsPublished: true,
	}, nil).Once()

	_, err := svc.PlaceOrder(orderInput(
		services.OrderItemInput{ProductID: "prod-1", Quantity: 5},
	), "user-1")
	assert.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, apperrors.StatusOf(err))
	assert.Contains(t, err.Error(), "insufficient stock")
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_PlaceOrder_UnpublishedProduct(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	svc := services.NewOrderService(orderRepo, productRepo, new(MockCouponRepository), nil)

	productRepo.On("GetByID", "prod-1").Return(&models.Product{
		ID: "prod-1", Name: "Draft", Price: 10, Stock: 10, IsPublished: false,
	}, nil).Once()

	_, err := svc.PlaceOrder(orderInput(
		services.OrderItemInput{ProductID: "prod-1", Quantity: 1},
	), "user-1")
	assert.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, apperrors.StatusOf(err))
}

func TestOrderService_PlaceOrder_WithCoupon(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	couponRepo := new(MockCouponRepository)
	svc := services.NewOrderService(orderRepo, productRepo, couponRepo, nil)

	productRepo.On("GetByID", "prod-1").Return(&models.Product{
		ID: "prod-1", Name: "Widget", Price: 50, Stock: 10, IsPublished: true,
	}, nil).Once()
	couponRepo.On("GetByCode", "SAVE10").Return(&models.Coupon{
		ID: "c-1", Code: "SAVE10", DiscountType: models.DiscountTypePercent,
		DiscountValue: 10, IsActive: true,
	}, nil).Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	in := orderInput(services.OrderItemInput{ProductID: "prod-1", Quantity: 2})
	in.CouponCode = "save10" // codes are case-insensitive

	order, err := svc.PlaceOrder(in, "")
	assert.NoError(t, err)
	assert.Equal(t, 100.0, order.Subtotal)
	assert.Equal(t, 10.0, order.Discount)
	assert.Equal(t, 90.0, order.TotalPayable)
	assert.True(t, order.IsGuest())
	couponRepo.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_CouponBelowMinimum(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	couponRepo := new(MockCouponRepository)
	svc := services.NewOrderService(orderRepo, productRepo, couponRepo, nil)

	productRepo.On("GetByID", "prod-1").Return(&models.Product{
		ID: "prod-1", Name: "Widget", Price: 10, Stock: 10, IsPublished: true,
	}, nil).Once()
	couponRepo.On("GetByCode", "BIG50").Return(&models.Coupon{
		ID: "c-1", Code: "BIG50", DiscountType: models.DiscountTypeFixed,
		DiscountValue: 50, MinOrderValue: 200, IsActive: true,
	}, nil).Once()

	in := orderInput(services.OrderItemInput{ProductID: "prod-1", Quantity: 1})
	in.CouponCode = "BIG50"

	_, err := svc.PlaceOrder(in, "")
	assert.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, apperrors.StatusOf(err))
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_PlaceOrder_ExpiredCoupon(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	couponRepo := new(MockCouponRepository)
	svc := services.NewOrderService(orderRepo, productRepo, couponRepo, nil)

	expired := time.Now().Add(-24 * time.Hour)
	productRepo.On("GetByID", "prod-1").Return(&models.Product{
		ID: "prod-1", Name: "Widget", Price: 10, Stock: 10, IsPublished: true,
	}, nil).Once()
	couponRepo.On("GetByCode", "OLD").Return(&models.Coupon{
		ID: "c-1", Code: "OLD", DiscountValue: 5, IsActive: true, ExpiresAt: &expired,
	}, nil).Once()

	in := orderInput(services.OrderItemInput{ProductID: "prod-1", Quantity: 1})
	in.CouponCode = "OLD"

	_, err := svc.PlaceOrder(in, "")
	assert.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, apperrors.StatusOf(err))
}

func TestOrderService_PlaceGuestOrder_RequiresEmail(t *testing.T) {
	svc := services.NewOrderService(new(MockOrderRepository), new(MockProductRepository), new(MockCouponRepository), nil)

	in := orderInput(services.OrderItemInput{ProductID: "prod-1", Quantity: 1})
	in.Email = ""

	_, err := svc.PlaceGuestOrder(in)
	assert.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, apperrors.StatusOf(err))
}

func TestOrderService_UpdateOrderStatus_Transitions(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	mq := new(MockPublisher)
	svc := services.NewOrderService(orderRepo, new(MockProductRepository), new(MockCouponRepository), mq)

	orderRepo.On("GetByID", "order-1").Return(&models.Order{
		ID: "order-1", OrderStatus: models.OrderStatusPlaced,
	}, nil).Once()
	orderRepo.On("UpdateStatus", "order-1", models.OrderStatusConfirmed).Return(nil).Once()
	mq.On("PublishOrderEvent", "order.status.changed", mock.Anything).Return(nil).Once()

	order, err := svc.UpdateOrderStatus("order-1", models.OrderStatusConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.OrderStatus)
	orderRepo.AssertExpectations(t)
	mq.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus_RejectsInvalidTransition(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := services.NewOrderService(orderRepo, new(MockProductRepository), new(MockCouponRepository), nil)

	// Skipping straight from placed to delivered is not allowed.
	orderRepo.On("GetByID", "order-1").Return(&models.Order{
		ID: "order-1", OrderStatus: models.OrderStatusPlaced,
	}, nil).Once()
	_, err := svc.UpdateOrderStatus("order-1", models.OrderStatusDelivered)
	assert.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, apperrors.StatusOf(err))

	// Delivered is terminal.
	orderRepo.On("GetByID", "order-2").Return(&models.Order{
		ID: "order-2", OrderStatus: models.OrderStatusDelivered,
	}, nil).Once()
	_, err = svc.UpdateOrderStatus("order-2", models.OrderStatusCancelled)
	assert.Error(t, err)

	// Unknown status names never reach the repository.
	_, err = svc.UpdateOrderStatus("order-3", "teleported")
	assert.Error(t, err)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestOrderService_UpdatePaymentStatus(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := services.NewOrderService(orderRepo, new(MockProductRepository), new(MockCouponRepository), nil)

	orderRepo.On("GetByID", "order-1").Return(&models.Order{
		ID: "order-1", PaymentStatus: models.PaymentStatusPending,
	}, nil).Once()
	orderRepo.On("UpdatePaymentStatus", "order-1", models.PaymentStatusPaid).Return(nil).Once()

	order, err := svc.UpdatePaymentStatus("order-1", models.PaymentStatusPaid)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)

	_, err = svc.UpdatePaymentStatus("order-1", "maybe")
	assert.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, apperrors.StatusOf(err))
	orderRepo.AssertExpectations(t)
}

func TestOrderService_LinkGuestOrdersToUser(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := services.NewOrderService(orderRepo, new(MockProductRepository), new(MockCouponRepository), nil)

	orderRepo.On("LinkGuestOrders", "guest@example.com", "user-1").Return(int64(3), nil).Once()

	linked, err := svc.LinkGuestOrdersToUser("guest@example.com", "user-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), linked)

	_, err = svc.LinkGuestOrdersToUser("", "user-1")
	assert.Error(t, err)
	orderRepo.AssertExpectations(t)
}
