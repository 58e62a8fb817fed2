package handlers

import (
	"storefront/internal/apperrors"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service     *services.ReviewService
	authService *services.AuthService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService, authService *services.AuthService) *ReviewHandler {
	return &ReviewHandler{service: service, authService: authService}
}

// RegisterRoutes registers the review routes. Anyone can read reviews and
// submit one; moderation (update, delete) is staff only.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	staffOnly := []fiber.Handler{
		middleware.AuthRequired(h.authService),
		middleware.RoleRequired(models.RoleAdmin, models.RoleEmployee),
	}

	reviews := router.Group("/reviews")
	reviews.Get("/", h.HandleListReviews)
	reviews.Get("/:id", h.HandleGetReview)
	reviews.Post("/", h.HandleCreateReview)
	reviews.Put("/:id", append(staffOnly, h.HandleUpdateReview)...)
	reviews.Delete("/:id", append(staffOnly, h.HandleDeleteReview)...)

	router.Get("/products/:id/reviews", h.HandleListProductReviews)
}

func (h *ReviewHandler) parseInput(c *fiber.Ctx) (services.ReviewInput, error) {
	var in services.ReviewInput
	if err := c.BodyParser(&in); err != nil {
		return in, apperrors.BadRequest("invalid request body")
	}
	image, err := formFileBytes(c, "image")
	if err != nil {
		return in, err
	}
	in.Image = image
	return in, nil
}

func (h *ReviewHandler) HandleListReviews(c *fiber.Ctx) error {
	rows, meta, err := h.service.ListReviews(parseListQuery(c))
	if err != nil {
		return err
	}
	return respondList(c, "Reviews retrieved", rows, meta)
}

func (h *ReviewHandler) HandleListProductReviews(c *fiber.Ctx) error {
	rows, err := h.service.ListProductReviews(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Reviews retrieved", rows)
}

func (h *ReviewHandler) HandleGetReview(c *fiber.Ctx) error {
	review, err := h.service.GetReview(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Review retrieved", review)
}

func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	review, err := h.service.CreateReview(in)
	if err != nil {
		return err
	}
	return respondCreated(c, "Review created", review)
}

func (h *ReviewHandler) HandleUpdateReview(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	review, err := h.service.UpdateReview(c.Params("id"), in)
	if err != nil {
		return err
	}
	return respondOK(c, "Review updated", review)
}

func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	review, err := h.service.DeleteReview(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Review deleted", review)
}
