package handlers

import (
	"storefront/internal/apperrors"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for categories, subcategories and
// brands.
type CatalogHandler struct {
	service     *services.CatalogService
	authService *services.AuthService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, authService *services.AuthService) *CatalogHandler {
	return &CatalogHandler{service: service, authService: authService}
}

// RegisterRoutes registers the taxonomy routes. Reads are public; writes
// require an admin or employee token.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	staffOnly := []fiber.Handler{
		middleware.AuthRequired(h.authService),
		middleware.RoleRequired(models.RoleAdmin, models.RoleEmployee),
	}

	categories := router.Group("/categories")
	categories.Get("/", h.HandleListCategories)
	categories.Get("/slug/:slug", h.HandleGetCategoryBySlug)
	categories.Get("/:id", h.HandleGetCategory)
	categories.Post("/", append(staffOnly, h.HandleCreateCategory)...)
	categories.Put("/:id", append(staffOnly, h.HandleUpdateCategory)...)
	categories.Delete("/:id", append(staffOnly, h.HandleDeleteCategory)...)

	subcategories := router.Group("/subcategories")
	subcategories.Get("/", h.HandleListSubcategories)
	subcategories.Get("/slug/:slug", h.HandleGetSubcategoryBySlug)
	subcategories.Get("/:id", h.HandleGetSubcategory)
	subcategories.Post("/", append(staffOnly, h.HandleCreateSubcategory)...)
	subcategories.Put("/:id", append(staffOnly, h.HandleUpdateSubcategory)...)
	subcategories.Delete("/:id", append(staffOnly, h.HandleDeleteSubcategory)...)

	brands := router.Group("/brands")
	brands.Get("/", h.HandleListBrands)
	brands.Get("/slug/:slug", h.HandleGetBrandBySlug)
	brands.Get("/:id", h.HandleGetBrand)
	brands.Post("/", append(staffOnly, h.HandleCreateBrand)...)
	brands.Put("/:id", append(staffOnly, h.HandleUpdateBrand)...)
	brands.Delete("/:id", append(staffOnly, h.HandleDeleteBrand)...)
}

func (h *CatalogHandler) parseInput(c *fiber.Ctx) (services.CatalogItemInput, error) {
	var in services.CatalogItemInput
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

// --- Categories ---

func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	rows, meta, err := h.service.ListCategories(parseListQuery(c))
	if err != nil {
		return err
	}
	return respondList(c, "Categories retrieved", rows, meta)
}

func (h *CatalogHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, err := h.service.GetCategory(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Category retrieved", category)
}

func (h *CatalogHandler) HandleGetCategoryBySlug(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryBySlug(c.Params("slug"))
	if err != nil {
		return err
	}
	return respondOK(c, "Category retrieved", category)
}

func (h *CatalogHandler) HandleCreateCategory(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	category, err := h.service.CreateCategory(in)
	if err != nil {
		return err
	}
	return respondCreated(c, "Category created", category)
}

func (h *CatalogHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	category, err := h.service.UpdateCategory(c.Params("id"), in)
	if err != nil {
		return err
	}
	return respondOK(c, "Category updated", category)
}

func (h *CatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	category, err := h.service.DeleteCategory(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Category deleted", category)
}

// --- Subcategories ---

func (h *CatalogHandler) HandleListSubcategories(c *fiber.Ctx) error {
	rows, meta, err := h.service.ListSubcategories(parseListQuery(c))
	if err != nil {
		return err
	}
	return respondList(c, "Subcategories retrieved", rows, meta)
}

func (h *CatalogHandler) HandleGetSubcategory(c *fiber.Ctx) error {
	subcategory, err := h.service.GetSubcategory(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Subcategory retrieved", subcategory)
}

func (h *CatalogHandler) HandleGetSubcategoryBySlug(c *fiber.Ctx) error {
	subcategory, err := h.service.GetSubcategoryBySlug(c.Params("slug"))
	if err != nil {
		return err
	}
	return respondOK(c, "Subcategory retrieved", subcategory)
}

func (h *CatalogHandler) HandleCreateSubcategory(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	subcategory, err := h.service.CreateSubcategory(in)
	if err != nil {
		return err
	}
	return respondCreated(c, "Subcategory created", subcategory)
}

func (h *CatalogHandler) HandleUpdateSubcategory(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	subcategory, err := h.service.UpdateSubcategory(c.Params("id"), in)
	if err != nil {
		return err
	}
	return respondOK(c, "Subcategory updated", subcategory)
}

func (h *CatalogHandler) HandleDeleteSubcategory(c *fiber.Ctx) error {
	subcategory, err := h.service.DeleteSubcategory(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Subcategory deleted", subcategory)
}

// --- Brands ---

func (h *CatalogHandler) HandleListBrands(c *fiber.Ctx) error {
	rows, meta, err := h.service.ListBrands(parseListQuery(c))
	if err != nil {
		return err
	}
	return respondList(c, "Brands retrieved", rows, meta)
}

func (h *CatalogHandler) HandleGetBrand(c *fiber.Ctx) error {
	brand, err := h.service.GetBrand(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Brand retrieved", brand)
}

func (h *CatalogHandler) HandleGetBrandBySlug(c *fiber.Ctx) error {
	brand, err := h.service.GetBrandBySlug(c.Params("slug"))
	if err != nil {
		return err
	}
	return respondOK(c, "Brand retrieved", brand)
}

func (h *CatalogHandler) HandleCreateBrand(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	brand, err := h.service.CreateBrand(in)
	if err != nil {
		return err
	}
	return respondCreated(c, "Brand created", brand)
}

func (h *CatalogHandler) HandleUpdateBrand(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	brand, err := h.service.UpdateBrand(c.Params("id"), in)
	if err != nil {
		return err
	}
	return respondOK(c, "Brand updated", brand)
}

func (h *CatalogHandler) HandleDeleteBrand(c *fiber.Ctx) error {
	brand, err := h.service.DeleteBrand(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Brand deleted", brand)
}
