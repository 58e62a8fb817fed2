package handlers

import (
	"storefront/internal/apperrors"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CouponHandler handles HTTP requests for discount coupons.
type CouponHandler struct {
	service     *services.CouponService
	authService *services.AuthService
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(service *services.CouponService, authService *services.AuthService) *CouponHandler {
	return &CouponHandler{service: service, authService: authService}
}

// RegisterRoutes registers the coupon routes. Shoppers can check a code
// against their cart subtotal; everything else is staff only.
func (h *CouponHandler) RegisterRoutes(router fiber.Router) {
	staffOnly := []fiber.Handler{
		middleware.AuthRequired(h.authService),
		middleware.RoleRequired(models.RoleAdmin, models.RoleEmployee),
	}

	coupons := router.Group("/coupons")
	coupons.Post("/validate", h.HandleValidateCoupon)
	coupons.Get("/", append(staffOnly, h.HandleListCoupons)...)
	coupons.Get("/:id", append(staffOnly, h.HandleGetCoupon)...)
	coupons.Post("/", append(staffOnly, h.HandleCreateCoupon)...)
	coupons.Put("/:id", append(staffOnly, h.HandleUpdateCoupon)...)
	coupons.Delete("/:id", append(staffOnly, h.HandleDeleteCoupon)...)
}

func (h *CouponHandler) HandleListCoupons(c *fiber.Ctx) error {
	rows, meta, err := h.service.ListCoupons(parseListQuery(c))
	if err != nil {
		return err
	}
	return respondList(c, "Coupons retrieved", rows, meta)
}

func (h *CouponHandler) HandleGetCoupon(c *fiber.Ctx) error {
	coupon, err := h.service.GetCoupon(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Coupon retrieved", coupon)
}

type validateCouponRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

// HandleValidateCoupon checks a coupon code against a cart subtotal and
// returns the discount it would grant.
func (h *CouponHandler) HandleValidateCoupon(c *fiber.Ctx) error {
	var req validateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	coupon, discount, err := h.service.ValidateCoupon(req.Code, req.Subtotal)
	if err != nil {
		return err
	}
	return respondOK(c, "Coupon is valid", fiber.Map{
		"coupon":   coupon,
		"discount": discount,
	})
}

func (h *CouponHandler) HandleCreateCoupon(c *fiber.Ctx) error {
	var in services.CouponInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	coupon, err := h.service.CreateCoupon(in)
	if err != nil {
		return err
	}
	return respondCreated(c, "Coupon created", coupon)
}

func (h *CouponHandler) HandleUpdateCoupon(c *fiber.Ctx) error {
	var in services.CouponInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	coupon, err := h.service.UpdateCoupon(c.Params("id"), in)
	if err != nil {
		return err
	}
	return respondOK(c, "Coupon updated", coupon)
}

func (h *CouponHandler) HandleDeleteCoupon(c *fiber.Ctx) error {
	coupon, err := h.service.DeleteCoupon(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Coupon deleted", coupon)
}
