package repositories

import "storefront/internal/models"

// OrderListQuery extends the uniform list filters with order-specific ones.
// The search filter matches the customer name.
type OrderListQuery struct {
	models.ListQuery
	UserID        string
	OrderStatus   string
	PaymentStatus string
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	ListOrders(q OrderListQuery) ([]models.Order, int64, error)
	GetByID(id string) (*models.Order, error)
	// Create persists the order header, its items and the stock decrements of
	// the referenced products in a single transaction.
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
	UpdatePaymentStatus(id string, status string) error
	// LinkGuestOrders assigns every guest order with the given contact email
	// to the user and returns the number of orders linked.
	LinkGuestOrders(email, userID string) (int64, error)
}
