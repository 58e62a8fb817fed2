package handlers

import (
	"storefront/internal/apperrors"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler handles HTTP requests for the landing-page content
// resources: banners, hero sections, client testimonials and policies.
type ContentHandler struct {
	service     *services.ContentService
	authService *services.AuthService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(service *services.ContentService, authService *services.AuthService) *ContentHandler {
	return &ContentHandler{service: service, authService: authService}
}

// RegisterRoutes registers the content routes. Reads are public; writes
// require an admin or employee token.
func (h *ContentHandler) RegisterRoutes(router fiber.Router) {
	staffOnly := []fiber.Handler{
		middleware.AuthRequired(h.authService),
		middleware.RoleRequired(models.RoleAdmin, models.RoleEmployee),
	}

	banners := router.Group("/banners")
	banners.Get("/", h.HandleListBanners)
	banners.Get("/:id", h.HandleGetBanner)
	banners.Post("/", append(staffOnly, h.HandleCreateBanner)...)
	banners.Put("/:id", append(staffOnly, h.HandleUpdateBanner)...)
	banners.Delete("/:id", append(staffOnly, h.HandleDeleteBanner)...)

	heroes := router.Group("/hero-sections")
	heroes.Get("/", h.HandleListHeroSections)
	heroes.Get("/:id", h.HandleGetHeroSection)
	heroes.Post("/", append(staffOnly, h.HandleCreateHeroSection)...)
	heroes.Put("/:id", append(staffOnly, h.HandleUpdateHeroSection)...)
	heroes.Delete("/:id", append(staffOnly, h.HandleDeleteHeroSection)...)

	clients := router.Group("/clients")
	clients.Get("/", h.HandleListClients)
	clients.Get("/:id", h.HandleGetClient)
	clients.Post("/", append(staffOnly, h.HandleCreateClient)...)
	clients.Put("/:id", append(staffOnly, h.HandleUpdateClient)...)
	clients.Delete("/:id", append(staffOnly, h.HandleDeleteClient)...)

	policies := router.Group("/policies")
	policies.Get("/:kind", h.HandleListPolicies)
	policies.Get("/:kind/active", h.HandleGetActivePolicy)
	policies.Post("/", append(staffOnly, h.HandleCreatePolicy)...)
	policies.Put("/:id", append(staffOnly, h.HandleUpdatePolicy)...)
	policies.Patch("/:id/activate", append(staffOnly, h.HandleActivatePolicy)...)
	policies.Delete("/:id", append(staffOnly, h.HandleDeletePolicy)...)
}

// --- Banners ---

func (h *ContentHandler) parseBannerInput(c *fiber.Ctx) (services.BannerInput, error) {
	var in services.BannerInput
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

func (h *ContentHandler) HandleListBanners(c *fiber.Ctx) error {
	rows, meta, err := h.service.ListBanners(parseListQuery(c))
	if err != nil {
		return err
	}
	return respondList(c, "Banners retrieved", rows, meta)
}

func (h *ContentHandler) HandleGetBanner(c *fiber.Ctx) error {
	banner, err := h.service.GetBanner(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Banner retrieved", banner)
}

func (h *ContentHandler) HandleCreateBanner(c *fiber.Ctx) error {
	in, err := h.parseBannerInput(c)
	if err != nil {
		return err
	}
	banner, err := h.service.CreateBanner(in)
	if err != nil {
		return err
	}
	return respondCreated(c, "Banner created", banner)
}

func (h *ContentHandler) HandleUpdateBanner(c *fiber.Ctx) error {
	in, err := h.parseBannerInput(c)
	if err != nil {
		return err
	}
	banner, err := h.service.UpdateBanner(c.Params("id"), in)
	if err != nil {
		return err
	}
	return respondOK(c, "Banner updated", banner)
}

func (h *ContentHandler) HandleDeleteBanner(c *fiber.Ctx) error {
	banner, err := h.service.DeleteBanner(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Banner deleted", banner)
}

// --- Hero sections ---

func (h *ContentHandler) parseHeroInput(c *fiber.Ctx) (services.HeroSectionInput, error) {
	var in services.HeroSectionInput
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

func (h *ContentHandler) HandleListHeroSections(c *fiber.Ctx) error {
	rows, meta, err := h.service.ListHeroSections(parseListQuery(c))
	if err != nil {
		return err
	}
	return respondList(c, "Hero sections retrieved", rows, meta)
}

func (h *ContentHandler) HandleGetHeroSection(c *fiber.Ctx) error {
	hero, err := h.service.GetHeroSection(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Hero section retrieved", hero)
}

func (h *ContentHandler) HandleCreateHeroSection(c *fiber.Ctx) error {
	in, err := h.parseHeroInput(c)
	if err != nil {
		return err
	}
	hero, err := h.service.CreateHeroSection(in)
	if err != nil {
		return err
	}
	return respondCreated(c, "Hero section created", hero)
}

func (h *ContentHandler) HandleUpdateHeroSection(c *fiber.Ctx) error {
	in, err := h.parseHeroInput(c)
	if err != nil {
		return err
	}
	hero, err := h.service.UpdateHeroSection(c.Params("id"), in)
	if err != nil {
		return err
	}
	return respondOK(c, "Hero section updated", hero)
}

func (h *ContentHandler) HandleDeleteHeroSection(c *fiber.Ctx) error {
	hero, err := h.service.DeleteHeroSection(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Hero section deleted", hero)
}

// --- Clients ---

func (h *ContentHandler) parseClientInput(c *fiber.Ctx) (services.ClientInput, error) {
	var in services.ClientInput
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

func (h *ContentHandler) HandleListClients(c *fiber.Ctx) error {
	rows, meta, err := h.service.ListClients(parseListQuery(c))
	if err != nil {
		return err
	}
	return respondList(c, "Clients retrieved", rows, meta)
}

func (h *ContentHandler) HandleGetClient(c *fiber.Ctx) error {
	client, err := h.service.GetClient(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Client retrieved", client)
}

func (h *ContentHandler) HandleCreateClient(c *fiber.Ctx) error {
	in, err := h.parseClientInput(c)
	if err != nil {
		return err
	}
	client, err := h.service.CreateClient(in)
	if err != nil {
		return err
	}
	return respondCreated(c, "Client created", client)
}

func (h *ContentHandler) HandleUpdateClient(c *fiber.Ctx) error {
	in, err := h.parseClientInput(c)
	if err != nil {
		return err
	}
	client, err := h.service.UpdateClient(c.Params("id"), in)
	if err != nil {
		return err
	}
	return respondOK(c, "Client updated", client)
}

func (h *ContentHandler) HandleDeleteClient(c *fiber.Ctx) error {
	client, err := h.service.DeleteClient(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Client deleted", client)
}

// --- Policies ---

func (h *ContentHandler) HandleListPolicies(c *fiber.Ctx) error {
	rows, err := h.service.ListPolicies(c.Params("kind"))
	if err != nil {
		return err
	}
	return respondOK(c, "Policies retrieved", rows)
}

func (h *ContentHandler) HandleGetActivePolicy(c *fiber.Ctx) error {
	policy, err := h.service.GetActivePolicy(c.Params("kind"))
	if err != nil {
		return err
	}
	return respondOK(c, "Policy retrieved", policy)
}

func (h *ContentHandler) HandleCreatePolicy(c *fiber.Ctx) error {
	var in services.PolicyInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	policy, err := h.service.CreatePolicy(in)
	if err != nil {
		return err
	}
	return respondCreated(c, "Policy created", policy)
}

func (h *ContentHandler) HandleUpdatePolicy(c *fiber.Ctx) error {
	var in services.PolicyInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	policy, err := h.service.UpdatePolicy(c.Params("id"), in)
	if err != nil {
		return err
	}
	return respondOK(c, "Policy updated", policy)
}

func (h *ContentHandler) HandleActivatePolicy(c *fiber.Ctx) error {
	policy, err := h.service.ActivatePolicy(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Policy activated", policy)
}

func (h *ContentHandler) HandleDeletePolicy(c *fiber.Ctx) error {
	policy, err := h.service.DeletePolicy(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Policy deleted", policy)
}
