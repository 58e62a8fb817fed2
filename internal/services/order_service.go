package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderItemInput is one requested line of an order. The unit price is looked
// up server-side; client-supplied prices are never trusted.
type OrderItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Color     string `json:"color"`
}

// OrderInput is the payload for placing an order.
type OrderInput struct {
	CustomerName     string           `json:"customer_name" validate:"required"`
	Email            string           `json:"email" validate:"required,email"`
	Phone            string           `json:"phone" validate:"required"`
	Address          string           `json:"address" validate:"required"`
	ShippingMethod   string           `json:"shipping_method" validate:"required"`
	PaymentMethod    string           `json:"payment_method" validate:"required"`
	CouponCode       string           `json:"coupon_code"`
	DeliveryCharge   float64          `json:"delivery_charge" validate:"gte=0"`
	AdditionalCharge float64          `json:"additional_charge" validate:"gte=0"`
	Items            []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// OrderService handles order placement and lifecycle.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	couponRepo  repositories.CouponRepository
	mq          rabbitmq.Publisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	couponRepo repositories.CouponRepository,
	mq rabbitmq.Publisher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		mq:          mq,
	}
}

// ListOrders returns one page of orders with pagination meta.
func (s *OrderService) ListOrders(q repositories.OrderListQuery) ([]models.Order, models.ListMeta, error) {
	q.Normalize()
	rows, total, err := s.orderRepo.ListOrders(q)
	if err != nil {
		return nil, models.ListMeta{}, err
	}
	return rows, models.NewListMeta(q.ListQuery, total), nil
}

// GetOrder retrieves an order with its items.
func (s *OrderService) GetOrder(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// PlaceOrder places an order for an authenticated user. Monetary totals are
// recomputed authoritatively from stored product prices; the only
// client-supplied money fields are the delivery and additional charges.
func (s *OrderService) PlaceOrder(in OrderInput, userID string) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperrors.BadRequest("order must contain at least one item")
	}

	order := &models.Order{
		ID:               uuid.New().String(),
		UserID:           userID,
		CustomerName:     in.CustomerName,
		Email:            in.Email,
		Phone:            in.Phone,
		Address:          in.Address,
		ShippingMethod:   in.ShippingMethod,
		PaymentMethod:    in.PaymentMethod,
		DeliveryCharge:   in.DeliveryCharge,
		AdditionalCharge: in.AdditionalCharge,
		OrderStatus:      models.OrderStatusPlaced,
		PaymentStatus:    models.PaymentStatusPending,
	}

	var subtotal float64
	for _, item := range in.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsPublished {
			return nil, apperrors.BadRequest(fmt.Sprintf("product %s is not available", product.Name))
		}
		if product.Stock < item.Quantity {
			return nil, apperrors.BadRequest(fmt.Sprintf(
				"insufficient stock for %s (requested: %d, available: %d)",
				product.Name, item.Quantity, product.Stock))
		}
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Color:     item.Color,
		})
		subtotal += product.Price * float64(item.Quantity)
	}
	order.Subtotal = round2(subtotal)

	if in.CouponCode != "" {
		discount, err := s.resolveCoupon(in.CouponCode, order.Subtotal)
		if err != nil {
			return nil, err
		}
		order.CouponCode = in.CouponCode
		order.Discount = round2(discount)
	}
	order.TotalPayable = round2(order.Subtotal - order.Discount + order.DeliveryCharge + order.AdditionalCharge)

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.publish("order.created", map[string]any{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"email":    order.Email,
		"status":   order.OrderStatus,
		"total":    order.TotalPayable,
	})
	return order, nil
}

// PlaceGuestOrder places an order keyed only by contact email, for later
// linking to an account.
func (s *OrderService) PlaceGuestOrder(in OrderInput) (*models.Order, error) {
	if in.Email == "" {
		return nil, apperrors.BadRequest("email is required for guest orders")
	}
	return s.PlaceOrder(in, "")
}

func (s *OrderService) resolveCoupon(code string, subtotal float64) (float64, error) {
	coupon, err := s.couponRepo.GetByCode(normalizeCode(code))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return 0, apperrors.BadRequest("invalid coupon code")
		}
		return 0, err
	}
	if !coupon.IsActive || coupon.Expired(time.Now()) {
		return 0, apperrors.BadRequest("coupon is no longer valid")
	}
	if subtotal < coupon.MinOrderValue {
		return 0, apperrors.BadRequest(fmt.Sprintf("order subtotal below coupon minimum of %.2f", coupon.MinOrderValue))
	}
	return coupon.DiscountFor(subtotal), nil
}

// LinkGuestOrdersToUser reassigns every guest order with the given contact
// email to the user and returns the number linked.
func (s *OrderService) LinkGuestOrdersToUser(email, userID string) (int64, error) {
	if email == "" || userID == "" {
		return 0, apperrors.BadRequest("email and user id are required")
	}
	return s.orderRepo.LinkGuestOrders(email, userID)
}

// UpdateOrderStatus moves an order through the fulfilment flow. Invalid
// transitions are rejected against the transition table.
func (s *OrderService) UpdateOrderStatus(id string, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.BadRequest("invalid order status: " + status)
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionOrderStatus(order.OrderStatus, status) {
		return nil, apperrors.BadRequest(fmt.Sprintf(
			"cannot move order from %s to %s", order.OrderStatus, status))
	}
	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.OrderStatus = status

	s.publish("order.status.changed", map[string]any{
		"order_id": order.ID,
		"status":   status,
	})
	return order, nil
}

// UpdatePaymentStatus updates the payment state of an order.
func (s *OrderService) UpdatePaymentStatus(id string, status string) (*models.Order, error) {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed:
	default:
		return nil, apperrors.BadRequest("invalid payment status: " + status)
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdatePaymentStatus(id, status); err != nil {
		return nil, err
	}
	order.PaymentStatus = status
	return order, nil
}

// publish sends an order event, logging instead of failing the request when
// the broker is unavailable.
func (s *OrderService) publish(eventType string, payload any) {
	if s.mq == nil {
		return
	}
	if err := s.mq.PublishOrderEvent(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
