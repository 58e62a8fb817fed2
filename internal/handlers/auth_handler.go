package handlers

import (
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const refreshCookieName = "refresh_token"

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/oauth", h.HandleOAuth)
	authRoutes.Post("/refresh", h.HandleRefresh)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/me", middleware.AuthRequired(h.authService), h.HandleMe)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	user, token, err := h.authService.Register(req)
	if err != nil {
		return err
	}
	return respondCreated(c, "User registered successfully", fiber.Map{
		"user":         user,
		"access_token": token,
	})
}

// HandleLogin handles local login and sets the refresh-token cookie.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	user, tokens, err := h.authService.Login(req)
	if err != nil {
		return err
	}
	h.setRefreshCookie(c, tokens.RefreshToken)
	return respondOK(c, "Login successful", fiber.Map{
		"user":         user,
		"access_token": tokens.AccessToken,
	})
}

// HandleOAuth handles OAuth login, creating the account on first login.
func (h *AuthHandler) HandleOAuth(c *fiber.Ctx) error {
	var req services.OAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	user, tokens, err := h.authService.OAuthLogin(req)
	if err != nil {
		return err
	}
	h.setRefreshCookie(c, tokens.RefreshToken)
	return respondOK(c, "Login successful", fiber.Map{
		"user":         user,
		"access_token": tokens.AccessToken,
	})
}

// HandleRefresh exchanges the refresh-token cookie for a fresh token pair.
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	refresh := c.Cookies(refreshCookieName)
	if refresh == "" {
		return apperrors.Unauthorized("refresh token is required")
	}

	user, tokens, err := h.authService.Refresh(refresh)
	if err != nil {
		return err
	}
	h.setRefreshCookie(c, tokens.RefreshToken)
	return respondOK(c, "Token refreshed", fiber.Map{
		"user":         user,
		"access_token": tokens.AccessToken,
	})
}

// HandleLogout clears the refresh-token cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return respondOK(c, "Logged out", nil)
}

// HandleMe returns the authenticated caller's identity claims.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	return respondOK(c, "OK", fiber.Map{
		"id":    c.Locals(middleware.LocalUserID),
		"email": c.Locals(middleware.LocalEmail),
		"role":  c.Locals(middleware.LocalRole),
	})
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		MaxAge:   30 * 24 * 60 * 60, // 30 days
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
