package handlers

import (
	"storefront/internal/apperrors"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service     *services.OrderService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, authService *services.AuthService) *OrderHandler {
	return &OrderHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the order routes. Guests place orders without a
// token; signed-in customers get their orders linked to their account.
// Listing all orders and moving them through the fulfilment pipeline is
// staff only.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	authed := middleware.AuthRequired(h.authService)
	staffOnly := []fiber.Handler{
		authed,
		middleware.RoleRequired(models.RoleAdmin, models.RoleEmployee),
	}

	orders := router.Group("/orders")
	orders.Post("/guest", h.HandlePlaceGuestOrder)
	orders.Post("/", authed, h.HandlePlaceOrder)
	orders.Get("/my", authed, h.HandleListMyOrders)
	orders.Get("/", append(staffOnly, h.HandleListOrders)...)
	orders.Get("/:id", append(staffOnly, h.HandleGetOrder)...)
	orders.Patch("/:id/status", append(staffOnly, h.HandleUpdateStatus)...)
	orders.Patch("/:id/payment-status", append(staffOnly, h.HandleUpdatePaymentStatus)...)
	orders.Post("/link-guest", append(staffOnly, h.HandleLinkGuestOrders)...)
}

func (h *OrderHandler) parseInput(c *fiber.Ctx) (services.OrderInput, error) {
	var in services.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return in, apperrors.BadRequest("invalid request body")
	}
	if err := validateStruct(h.validate, in); err != nil {
		return in, err
	}
	return in, nil
}

// HandlePlaceOrder places an order on behalf of the authenticated customer.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	order, err := h.service.PlaceOrder(in, userID)
	if err != nil {
		return err
	}
	return respondCreated(c, "Order placed", order)
}

// HandlePlaceGuestOrder places an order identified only by the guest's email.
func (h *OrderHandler) HandlePlaceGuestOrder(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	order, err := h.service.PlaceGuestOrder(in)
	if err != nil {
		return err
	}
	return respondCreated(c, "Order placed", order)
}

func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	q := repositories.OrderListQuery{
		ListQuery:     parseListQuery(c),
		UserID:        c.Query("userId"),
		OrderStatus:   c.Query("orderStatus"),
		PaymentStatus: c.Query("paymentStatus"),
	}
	rows, meta, err := h.service.ListOrders(q)
	if err != nil {
		return err
	}
	return respondList(c, "Orders retrieved", rows, meta)
}

// HandleListMyOrders lists the authenticated customer's own orders.
func (h *OrderHandler) HandleListMyOrders(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	q := repositories.OrderListQuery{
		ListQuery: parseListQuery(c),
		UserID:    userID,
	}
	rows, meta, err := h.service.ListOrders(q)
	if err != nil {
		return err
	}
	return respondList(c, "Orders retrieved", rows, meta)
}

func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Order retrieved", order)
}

type linkGuestOrdersRequest struct {
	Email  string `json:"email" validate:"required,email"`
	UserID string `json:"user_id" validate:"required"`
}

// HandleLinkGuestOrders reassigns guest orders matching an email to a user.
// Registration and login do this automatically; the endpoint covers manual
// back-office fixes.
func (h *OrderHandler) HandleLinkGuestOrders(c *fiber.Ctx) error {
	var req linkGuestOrdersRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}
	linked, err := h.service.LinkGuestOrdersToUser(req.Email, req.UserID)
	if err != nil {
		return err
	}
	return respondOK(c, "Guest orders linked", fiber.Map{"linked": linked})
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req statusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}
	order, err := h.service.UpdateOrderStatus(c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return respondOK(c, "Order status updated", order)
}

func (h *OrderHandler) HandleUpdatePaymentStatus(c *fiber.Ctx) error {
	var req statusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}
	order, err := h.service.UpdatePaymentStatus(c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return respondOK(c, "Payment status updated", order)
}
