package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/http/middleware"
)

// AuthHandlers handles the /api/auth endpoints
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	FullName    string      `json:"fullName" binding:"required"`
	Email       string      `json:"email" binding:"required,email"`
	PhoneNumber string      `json:"phoneNumber" binding:"required"`
	Password    string      `json:"password" binding:"required,min=6"`
	Role        domain.Role `json:"role"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyOTPRequest represents signup verification request
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// ResendOTPRequest represents a request for a fresh signup code
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Register handles account signup. A missing role registers a room finder.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Role == "" {
		req.Role = domain.RoleRoomFinder
	}

	account, err := h.authSvc.Register(c.Request.Context(), domain.RegisterRequest{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Role:        req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, domain.MessageResponse{
		Message: "Registration successful. An OTP has been sent to " + account.Email,
	})
}

// VerifyOTP confirms a signup
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.authSvc.VerifySignup(c.Request.Context(), req.Email, req.OTP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.MessageResponse{Message: "Email verified successfully. You can now log in."})
}

// ResendOTP sends a fresh signup code
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.authSvc.ResendSignupCode(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.MessageResponse{Message: "A new OTP has been sent to your email"})
}

// Login exchanges credentials for an access token
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the identity behind the bearer token
func (h *AuthHandlers) Me(c *gin.Context) {
	user, err := h.authSvc.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(c, http.StatusUnauthorized, "Account no longer exists")
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
