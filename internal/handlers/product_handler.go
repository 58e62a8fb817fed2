package handlers

import (
	"io"

	"storefront/internal/apperrors"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service     *services.ProductService
	authService *services.AuthService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, authService *services.AuthService) *ProductHandler {
	return &ProductHandler{service: service, authService: authService}
}

// RegisterRoutes registers the product routes. Reads are public; writes
// require an admin or employee token.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	staffOnly := []fiber.Handler{
		middleware.AuthRequired(h.authService),
		middleware.RoleRequired(models.RoleAdmin, models.RoleEmployee),
	}

	products := router.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Get("/slug/:slug", h.HandleGetProductBySlug)
	products.Get("/:id", h.HandleGetProduct)
	products.Post("/", append(staffOnly, h.HandleCreateProduct)...)
	products.Put("/:id", append(staffOnly, h.HandleUpdateProduct)...)
	products.Delete("/:id", append(staffOnly, h.HandleDeleteProduct)...)
}

// HandleListProducts lists products. Unauthenticated storefront traffic only
// sees published products; the publishedOnly filter is forced unless the
// caller asks for drafts explicitly via publishedOnly=false (admin panel).
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	q := repositories.ProductListQuery{
		ListQuery:     parseListQuery(c),
		CategoryID:    c.Query("categoryId"),
		SubcategoryID: c.Query("subcategoryId"),
		BrandID:       c.Query("brandId"),
		PublishedOnly: c.Query("publishedOnly", "true") != "false",
	}
	rows, meta, err := h.service.ListProducts(q)
	if err != nil {
		return err
	}
	return respondList(c, "Products retrieved", rows, meta)
}

func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Product retrieved", product)
}

func (h *ProductHandler) HandleGetProductBySlug(c *fiber.Ctx) error {
	product, err := h.service.GetProductBySlug(c.Params("slug"))
	if err != nil {
		return err
	}
	return respondOK(c, "Product retrieved", product)
}

func (h *ProductHandler) parseInput(c *fiber.Ctx) (services.ProductInput, error) {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return in, apperrors.BadRequest("invalid request body")
	}

	image, err := formFileBytes(c, "image")
	if err != nil {
		return in, err
	}
	in.Image = image

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["gallery"] {
			f, err := header.Open()
			if err != nil {
				return in, apperrors.BadRequest("could not read gallery file")
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return in, apperrors.BadRequest("could not read gallery file")
			}
			in.GalleryImages = append(in.GalleryImages, data)
		}
	}
	return in, nil
}

func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	product, err := h.service.CreateProduct(in)
	if err != nil {
		return err
	}
	return respondCreated(c, "Product created", product)
}

func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	product, err := h.service.UpdateProduct(c.Params("id"), in)
	if err != nil {
		return err
	}
	return respondOK(c, "Product updated", product)
}

func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.DeleteProduct(c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Product deleted", product)
}
