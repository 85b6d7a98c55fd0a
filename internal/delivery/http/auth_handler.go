package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"tradejournal/internal/delivery/http/dto"
	"tradejournal/internal/domain"
	"tradejournal/internal/middleware"
)

// AuthHandler handles registration and login. Password hashing and token
// issuance live here, at the edge; the core only ever sees opaque hashes
// and an authenticated actor.
type AuthHandler struct {
	userRepo domain.UserRepository
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo domain.UserRepository) *AuthHandler {
	return &AuthHandler{userRepo: userRepo}
}

// Register handles account creation
// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return BadRequestResponse(c, "Username, email and password are required")
	}
	if req.Password != req.ConfirmPassword {
		return BadRequestResponse(c, "Passwords do not match")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return ErrorResponse(c, http.StatusConflict, "Username already taken", nil)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return InternalServerErrorResponse(c, "Failed to check username", err)
	}
	if _, err := h.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return ErrorResponse(c, http.StatusConflict, "Email already registered", nil)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return InternalServerErrorResponse(c, "Failed to check email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to hash password", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	// Register decides the role: the first account ever becomes admin.
	if err := h.userRepo.Register(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return ErrorResponse(c, http.StatusConflict, "Email already registered", nil)
		}
		return InternalServerErrorResponse(c, "Failed to create user", err)
	}

	return CreatedResponse(c, &dto.UserOutput{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Username == "" || req.Password == "" {
		return BadRequestResponse(c, "Username and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to generate token", err)
	}

	cookie := &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400, // 24 hours
	}
	c.SetCookie(cookie)

	return SuccessResponse(c, dto.LoginResponse{
		Token: token,
		User: &dto.UserOutput{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
	})
}

// Logout clears the session cookie
// POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie := &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	}
	c.SetCookie(cookie)
	return SuccessMessageResponse(c, "Logged out", nil)
}
