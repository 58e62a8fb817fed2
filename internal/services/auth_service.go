package services

import (
	"fmt"
	"log"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Token lifetimes. The refresh token matches the 30-day cookie max-age the
// handler sets.
const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

// RegisterRequest is the payload for local registration.
type RegisterRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Newsletter bool   `json:"newsletter"`
}

// LoginRequest is the payload for local login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OAuthRequest is the payload for OAuth login/upsert.
type OAuthRequest struct {
	Provider   string `json:"provider" validate:"required"`
	ProviderID string `json:"provider_id" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
}

// TokenPair carries the signed session tokens issued on login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles registration, login and OAuth upsert. Every user object
// it returns has the password hash stripped; the hash never leaves this
// service.
type AuthService struct {
	userRepo  repositories.UserRepository
	orderRepo repositories.OrderRepository
	jwtSecret []byte
}

// NewAuthService creates a new AuthService. orderRepo is used to link prior
// guest orders to a user on registration.
func NewAuthService(userRepo repositories.UserRepository, orderRepo repositories.OrderRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

// Register creates a local account and returns the sanitized user with an
// access token. Guest orders placed earlier with the same email are linked to
// the new account.
func (s *AuthService) Register(req RegisterRequest) (*models.User, string, error) {
	taken, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", apperrors.Conflict(fmt.Sprintf("email '%s' already registered", req.Email))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashed),
		Role:       models.RoleUser,
		IsActive:   true,
		Newsletter: req.Newsletter,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	if s.orderRepo != nil {
		if _, err := s.orderRepo.LinkGuestOrders(user.Email, user.ID); err != nil {
			// The account exists either way; linking retries on next login.
			log.Printf("Warning: failed to link guest orders for %s: %v", user.Email, err)
		}
	}

	access, err := s.signToken(user, "access", accessTokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user.Sanitize(), access, nil
}

// Login authenticates a local account and issues an access/refresh token
// pair. Unknown email fails NotFound, an inactive account Forbidden, and a
// password mismatch Unauthorized.
func (s *AuthService) Login(req LoginRequest) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperrors.Forbidden("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, apperrors.Unauthorized("invalid credentials")
	}

	return s.startSession(user)
}

// OAuthLogin looks the user up by email, creating the account on first login
// with a random unusable password and a pre-verified email. The session it
// starts is identical to a local login.
func (s *AuthService) OAuthLogin(req OAuthRequest) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, nil, err
		}
		user, err = s.createOAuthUser(req)
		if err != nil {
			return nil, nil, err
		}
	}
	if !user.IsActive {
		return nil, nil, apperrors.Forbidden("account is disabled")
	}

	return s.startSession(user)
}

func (s *AuthService) createOAuthUser(req OAuthRequest) (*models.User, error) {
	// The placeholder password is random and never disclosed, so the account
	// cannot be entered through the local login path.
	placeholder, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash placeholder password", err)
	}

	now := time.Now()
	user := &models.User{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Email:           req.Email,
		Password:        string(placeholder),
		Role:            models.RoleUser,
		IsActive:        true,
		Provider:        req.Provider,
		ProviderID:      req.ProviderID,
		EmailVerifiedAt: &now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) startSession(user *models.User) (*models.User, *TokenPair, error) {
	now := time.Now()
	if err := s.userRepo.TouchLastActive(user.ID, now); err != nil {
		return nil, nil, err
	}
	user.LastActiveAt = &now

	if s.orderRepo != nil {
		if _, err := s.orderRepo.LinkGuestOrders(user.Email, user.ID); err != nil {
			log.Printf("Warning: failed to link guest orders for %s: %v", user.Email, err)
		}
	}

	access, err := s.signToken(user, "access", accessTokenTTL)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.signToken(user, "refresh", refreshTokenTTL)
	if err != nil {
		return nil, nil, err
	}

	return user.Sanitize(), &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) signToken(user *models.User, typ string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"typ":   typ,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a signed token of the expected type
// ("access" or "refresh") and returns its claims.
func (s *AuthService) ValidateToken(tokenString, expectedType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.Unauthorized("invalid token")
	}
	if typ, _ := claims["typ"].(string); typ != expectedType {
		return nil, apperrors.Unauthorized("wrong token type")
	}
	return claims, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(refreshToken string) (*models.User, *TokenPair, error) {
	claims, err := s.ValidateToken(refreshToken, "refresh")
	if err != nil {
		return nil, nil, err
	}
	id, _ := claims["id"].(string)
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperrors.Forbidden("account is disabled")
	}
	return s.startSession(user)
}
