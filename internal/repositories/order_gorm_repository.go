package repositories

import (
	"errors"
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

func (r *GORMOrderRepository) listScope(q OrderListQuery) *gorm.DB {
	tx := r.db.Model(&models.Order{})
	if q.Search != "" {
		tx = tx.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(q.Search)+"%")
	}
	if q.UserID != "" {
		tx = tx.Where("user_id = ?", q.UserID)
	}
	if q.OrderStatus != "" {
		tx = tx.Where("order_status = ?", q.OrderStatus)
	}
	if q.PaymentStatus != "" {
		tx = tx.Where("payment_status = ?", q.PaymentStatus)
	}
	return tx
}

// ListOrders returns one page of orders with their items preloaded.
func (r *GORMOrderRepository) ListOrders(q OrderListQuery) ([]models.Order, int64, error) {
	q.Normalize()

	var total int64
	if err := r.listScope(q).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count order list", err)
	}

	var orders []models.Order
	err := r.listScope(q).
		Preload("Items").
		Order("created_at desc").
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&orders).Error
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list orders", err)
	}
	return orders, total, nil
}

// GetByID retrieves an order and its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, apperrors.Internal("failed to get order", err)
	}
	return &order, nil
}

// Create writes the order header, its items (via the association) and the
// stock decrement of every referenced product inside one transaction, so a
// failure cannot leave the order half-placed.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, item := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.BadRequest("insufficient stock for product " + item.Name)
			}
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Internal("failed to create order", err)
	}
	return nil
}

// UpdateStatus writes the order status field.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("order_status", status)
	if res.Error != nil {
		return apperrors.Internal("failed to update order status", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("order not found")
	}
	return nil
}

// UpdatePaymentStatus writes the payment status field.
func (r *GORMOrderRepository) UpdatePaymentStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("payment_status", status)
	if res.Error != nil {
		return apperrors.Internal("failed to update payment status", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("order not found")
	}
	return nil
}

// LinkGuestOrders reassigns guest orders matching the email to the user. The
// match-and-update is naturally idempotent: linked orders no longer match.
func (r *GORMOrderRepository) LinkGuestOrders(email, userID string) (int64, error) {
	res := r.db.Model(&models.Order{}).
		Where("email = ? AND (user_id = '' OR user_id IS NULL)", email).
		Update("user_id", userID)
	if res.Error != nil {
		return 0, apperrors.Internal("failed to link guest orders", res.Error)
	}
	return res.RowsAffected, nil
}
