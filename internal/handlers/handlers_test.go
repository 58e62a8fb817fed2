package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/uploader"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Subcategory{},
		&models.Brand{},
		&models.Product{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
		&models.Banner{},
		&models.HeroSection{},
		&models.Client{},
		&models.Policy{},
		&models.Coupon{},
	))

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	subcategoryRepo := repositories.NewGORMSubcategoryRepository(db)
	brandRepo := repositories.NewGORMBrandRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	couponRepo := repositories.NewGORMCouponRepository(db)

	uploads := &uploader.Fake{}
	authService := services.NewAuthService(userRepo, orderRepo, "test-secret")
	catalogService := services.NewCatalogService(categoryRepo, subcategoryRepo, brandRepo, uploads)
	productService := services.NewProductService(productRepo, uploads)
	reviewService := services.NewReviewService(reviewRepo, productRepo, uploads)
	orderService := services.NewOrderService(orderRepo, productRepo, couponRepo, nil)
	couponService := services.NewCouponService(couponRepo)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewCatalogHandler(catalogService, authService).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService, authService).RegisterRoutes(apiV1)
	handlers.NewReviewHandler(reviewService, authService).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService, authService).RegisterRoutes(apiV1)
	handlers.NewCouponHandler(couponService, authService).RegisterRoutes(apiV1)

	return &testEnv{app: app, db: db}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// seedStaff inserts an admin account directly and returns an access token
// for it.
func (e *testEnv) seedStaff(t *testing.T) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	assert.NoError(t, e.db.Create(&models.User{
		ID:       uuid.New().String(),
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: string(hash),
		Role:     models.RoleAdmin,
		IsActive: true,
	}).Error)

	resp := e.request(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "admin@example.com",
		"password": "admin-pass",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	return data["access_token"].(string)
}

func (e *testEnv) seedProduct(t *testing.T, name string, price float64, stock int) string {
	t.Helper()
	id := uuid.New().String()
	assert.NoError(t, e.db.Create(&models.Product{
		ID: id, Name: name, Slug: name, Price: price, Stock: stock, IsPublished: true,
	}).Error)
	return id
}

func TestRegisterAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotContains(t, user, "password")

	// Second registration with the same email conflicts.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name":     "Alice Again",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	token := body["data"].(map[string]any)["access_token"].(string)

	resp = env.request(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "alice@example.com", body["data"].(map[string]any)["email"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.seedStaff(t)

	resp := env.request(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCategoryWritesRequireStaff(t *testing.T) {
	env := newTestEnv(t)

	// Anonymous write is rejected.
	resp := env.request(t, http.MethodPost, "/api/v1/categories", "", fiber.Map{"name": "Laptops"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A regular customer is rejected too.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name": "Bob", "email": "bob@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	customerToken := decodeBody(t, resp)["data"].(map[string]any)["access_token"].(string)

	resp = env.request(t, http.MethodPost, "/api/v1/categories", customerToken, fiber.Map{"name": "Laptops"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Staff succeeds, and the slug is derived from the name.
	staffToken := env.seedStaff(t)
	resp = env.request(t, http.MethodPost, "/api/v1/categories", staffToken, fiber.Map{"name": "Gaming Laptops"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "gaming-laptops", data["slug"])

	// Same name again gets a suffixed slug, not a failure.
	resp = env.request(t, http.MethodPost, "/api/v1/categories", staffToken, fiber.Map{"name": "Gaming Laptops"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data = decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "gaming-laptops-2", data["slug"])

	// Public read works without a token.
	resp = env.request(t, http.MethodGet, "/api/v1/categories/slug/gaming-laptops", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuestOrderFlowAndLinking(t *testing.T) {
	env := newTestEnv(t)
	productID := env.seedProduct(t, "mouse", 25.0, 10)

	// Guest places an order without any token.
	resp := env.request(t, http.MethodPost, "/api/v1/orders/guest", "", fiber.Map{
		"customer_name":   "Carol",
		"email":           "carol@example.com",
		"phone":           "01700000000",
		"address":         "1 Guest Lane",
		"shipping_method": models.ShippingHomeDelivery,
		"payment_method":  models.PaymentCashOnDelivery,
		"delivery_charge": 5.0,
		"items": []fiber.Map{
			{"product_id": productID, "quantity": 2},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, 50.0, data["subtotal"])
	assert.Equal(t, 55.0, data["total_payable"])
	assert.Equal(t, models.OrderStatusPlaced, data["order_status"])
	assert.Equal(t, "", data["user_id"])

	// Stock was decremented.
	var product models.Product
	assert.NoError(t, env.db.First(&product, "id = ?", productID).Error)
	assert.Equal(t, 8, product.Stock)

	// Registration with the guest's email adopts the order.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name": "Carol", "email": "carol@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	token := decodeBody(t, resp)["data"].(map[string]any)["access_token"].(string)

	resp = env.request(t, http.MethodGet, "/api/v1/orders/my", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	orders := body["data"].([]any)
	assert.Len(t, orders, 1)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, 1.0, meta["total"])
}

func TestGuestOrderInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	productID := env.seedProduct(t, "mouse", 25.0, 1)

	resp := env.request(t, http.MethodPost, "/api/v1/orders/guest", "", fiber.Map{
		"customer_name":   "Carol",
		"email":           "carol@example.com",
		"phone":           "01700000000",
		"address":         "1 Guest Lane",
		"shipping_method": models.ShippingHomeDelivery,
		"payment_method":  models.PaymentCashOnDelivery,
		"items": []fiber.Map{
			{"product_id": productID, "quantity": 5},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "insufficient stock")
}

func TestOrderStatusPipeline(t *testing.T) {
	env := newTestEnv(t)
	staffToken := env.seedStaff(t)
	productID := env.seedProduct(t, "mouse", 25.0, 10)

	resp := env.request(t, http.MethodPost, "/api/v1/orders/guest", "", fiber.Map{
		"customer_name":   "Carol",
		"email":           "carol@example.com",
		"phone":           "01700000000",
		"address":         "1 Guest Lane",
		"shipping_method": models.ShippingPickupPoint,
		"payment_method":  models.PaymentCard,
		"items": []fiber.Map{
			{"product_id": productID, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := decodeBody(t, resp)["data"].(map[string]any)["id"].(string)

	// Customers cannot drive the pipeline.
	resp = env.request(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", "", fiber.Map{
		"status": models.OrderStatusConfirmed,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Skipping a stage is rejected.
	resp = env.request(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", staffToken, fiber.Map{
		"status": models.OrderStatusDelivered,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for _, status := range []string{
		models.OrderStatusConfirmed,
		models.OrderStatusPickedUp,
		models.OrderStatusOnTheWay,
		models.OrderStatusDelivered,
	} {
		resp = env.request(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", staffToken, fiber.Map{
			"status": status,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// Delivered is terminal.
	resp = env.request(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", staffToken, fiber.Map{
		"status": models.OrderStatusCancelled,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/payment-status", staffToken, fiber.Map{
		"status": models.PaymentStatusPaid,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReviewUpdatesProductRating(t *testing.T) {
	env := newTestEnv(t)
	productID := env.seedProduct(t, "mouse", 25.0, 10)

	for _, rating := range []int{5, 4} {
		resp := env.request(t, http.MethodPost, "/api/v1/reviews", "", fiber.Map{
			"product_id":  productID,
			"author_name": "Reviewer",
			"rating":      rating,
			"text":        "nice",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := env.request(t, http.MethodGet, "/api/v1/products/"+productID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, 4.5, data["rating"])
	assert.Equal(t, 2.0, data["review_count"])

	resp = env.request(t, http.MethodGet, "/api/v1/products/"+productID+"/reviews", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody(t, resp)["data"].([]any), 2)
}

func TestCouponValidationEndpoint(t *testing.T) {
	env := newTestEnv(t)
	staffToken := env.seedStaff(t)

	resp := env.request(t, http.MethodPost, "/api/v1/coupons", staffToken, fiber.Map{
		"code":            "SAVE10",
		"discount_type":   models.DiscountTypePercent,
		"discount_value":  10.0,
		"min_order_value": 50.0,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Anyone can check a code against their cart.
	resp = env.request(t, http.MethodPost, "/api/v1/coupons/validate", "", fiber.Map{
		"code":     "save10",
		"subtotal": 200.0,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, 20.0, data["discount"])

	resp = env.request(t, http.MethodPost, "/api/v1/coupons/validate", "", fiber.Map{
		"code":     "save10",
		"subtotal": 20.0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Listing coupons is staff only.
	resp = env.request(t, http.MethodGet, "/api/v1/coupons", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
