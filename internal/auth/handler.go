package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles the account-management HTTP endpoints.
type Handler struct {
	service Service
	tokens  *TokenIssuer
	logger  *slog.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service Service, tokens *TokenIssuer, logger *slog.Logger) *Handler {
	return &Handler{service: service, tokens: tokens, logger: logger}
}

// Register handles PUT /auth/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is not valid"})
		case errors.Is(err, ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		case errors.Is(err, ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "First and last name required"})
		case errors.Is(err, ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be a min of 10 chars, and have upper and lowers"})
		case errors.Is(err, ErrRegisterFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to register user"})
		default:
			h.logger.Error("register failed", "op", "auth.Register", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "data": user})
}

// Login handles POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		case errors.Is(err, ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is not valid"})
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		default:
			h.logger.Error("login failed", "op", "auth.Login", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Token rides along as a cookie with max-age matching its expiry.
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("jwt", result.Token, int(h.tokens.TTL().Seconds()), "/", "", false, false)

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "data": result})
}

// Delete handles DELETE /auth/user
func (h *Handler) Delete(c *gin.Context) {
	email := c.Query("email")

	user, err := h.service.Delete(c.Request.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is not valid"})
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, ErrDeleteFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		default:
			h.logger.Error("delete failed", "op", "auth.Delete", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "data": user})
}
