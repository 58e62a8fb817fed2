package models

import "time"

// Order statuses. Transitions follow the linear fulfilment flow; cancelled is
// reachable from any non-terminal state.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPickedUp  = "picked_up"
	OrderStatusOnTheWay  = "on_the_way"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Shipping methods.
const (
	ShippingHomeDelivery = "home_delivery"
	ShippingPickupPoint  = "pickup_point"
)

// Payment methods.
const (
	PaymentCashOnDelivery = "cash_on_delivery"
	PaymentCard           = "card"
	PaymentMobileBanking  = "mobile_banking"
)

var orderTransitions = map[string][]string{
	OrderStatusPlaced:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPickedUp, OrderStatusCancelled},
	OrderStatusPickedUp:  {OrderStatusOnTheWay, OrderStatusCancelled},
	OrderStatusOnTheWay:  {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// ValidOrderStatus reports whether s names a known order status.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionOrderStatus reports whether an order may move from one status
// to another.
func CanTransitionOrderStatus(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderItem is a single line of an order. Price is the unit price captured at
// placement time, not a live reference to the product price.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"type:varchar(36);index"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36);index"`
	Name      string  `json:"name" gorm:"type:varchar(180)"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"type:decimal(12,2);not null"`
	Color     string  `json:"color" gorm:"type:varchar(60)"`
}

// Order represents a customer order. UserID is empty for guest orders, which
// are keyed by contact email until linked to an account.
type Order struct {
	ID               string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID           string      `json:"user_id" gorm:"type:varchar(36);index"`
	CustomerName     string      `json:"customer_name" gorm:"type:varchar(100)"`
	Email            string      `json:"email" gorm:"type:varchar(255);index"`
	Phone            string      `json:"phone" gorm:"type:varchar(30)"`
	Address          string      `json:"address" gorm:"type:varchar(300)"`
	ShippingMethod   string      `json:"shipping_method" gorm:"type:varchar(30)"`
	PaymentMethod    string      `json:"payment_method" gorm:"type:varchar(30)"`
	CouponCode       string      `json:"coupon_code,omitempty" gorm:"type:varchar(40)"`
	Subtotal         float64     `json:"subtotal" gorm:"type:decimal(12,2)"`
	Discount         float64     `json:"discount" gorm:"type:decimal(12,2)"`
	DeliveryCharge   float64     `json:"delivery_charge" gorm:"type:decimal(12,2)"`
	AdditionalCharge float64     `json:"additional_charge" gorm:"type:decimal(12,2)"`
	TotalPayable     float64     `json:"total_payable" gorm:"type:decimal(12,2)"`
	OrderStatus      string      `json:"order_status" gorm:"type:varchar(20);default:placed"`
	PaymentStatus    string      `json:"payment_status" gorm:"type:varchar(20);default:pending"`
	Items            []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// IsGuest reports whether the order was placed without an account.
func (o *Order) IsGuest() bool {
	return o.UserID == ""
}
