package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vendorhub/internal/domain"
	"vendorhub/internal/pkg/response"
)

// rolePaths is the fixed role-to-path enumeration: /auth/vendor/...,
// /auth/manager/..., etc. No dynamic dispatch; unknown segments are a
// validation error.
var rolePaths = map[string]domain.Role{
	"vendor":    domain.RoleVendor,
	"manager":   domain.RoleVendorManager,
	"admin":     domain.RoleAdmin,
	"warehouse": domain.RoleWarehouseManager,
}

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/:role/register", h.Register)
		authGroup.POST("/:role/login", h.Login)
		authGroup.POST("/verify-otp", h.VerifyOTP)
		authGroup.POST("/resend-otp", h.ResendOTP)
	}
}

func roleFromPath(c *gin.Context) (domain.Role, bool) {
	role, ok := rolePaths[c.Param("role")]
	return role, ok
}

func publicIdentity(u *domain.Identity) IdentityPublic {
	return IdentityPublic{
		ID:       u.ID,
		Email:    u.Email,
		Role:     string(u.Role),
		VendorID: u.VendorID,
		Phone:    u.Phone,
		Verified: u.Verified,
	}
}

func (h *Handler) Register(c *gin.Context) {
	role, ok := roleFromPath(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Unknown role path")
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}
	if role == domain.RoleVendor && req.LegalName == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "legal_name is required for vendor registration")
		return
	}

	result, err := h.service.Register(c.Request.Context(), role, req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered for this role")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
		return
	}

	data := gin.H{"user": publicIdentity(result.Identity)}
	if result.Vendor != nil {
		data["vendor"] = result.Vendor
	}

	if !result.Delivered {
		// challenge is issued, delivery failed: distinct from any
		// validation failure, retryable via resend-otp
		response.Message(c, http.StatusCreated,
			"Registered, but the verification code could not be delivered. Request a new code.", data)
		return
	}
	response.Success(c, http.StatusCreated, data)
}

func (h *Handler) Login(c *gin.Context) {
	role, ok := roleFromPath(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Unknown role path")
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), role, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, ErrEmailNotVerified):
			response.Error(c, http.StatusForbidden, "EMAIL_NOT_VERIFIED", "Confirm your email before logging in")
		case errors.Is(err, ErrRoleMismatch):
			response.Error(c, http.StatusForbidden, "ROLE_MISMATCH", "This account is registered under a different role")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "This account has been deactivated")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  publicIdentity(result.Identity),
		"token": result.Token,
	})
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	identity, err := h.service.VerifyOTP(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCodeFormat):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Code must be six digits")
		case errors.Is(err, ErrNoActiveChallenge):
			response.Error(c, http.StatusBadRequest, "NO_ACTIVE_CHALLENGE", "No active verification code for this email")
		case errors.Is(err, ErrChallengeExpired):
			response.Error(c, http.StatusGone, "CHALLENGE_EXPIRED", "Verification code expired, request a new one")
		case errors.Is(err, ErrCodeMismatch):
			response.Error(c, http.StatusBadRequest, "CODE_MISMATCH", "Verification code does not match")
		default:
			response.Error(c, http.StatusInternalServerError, "VERIFICATION_FAILED", "Failed to verify code")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": publicIdentity(identity)})
}

func (h *Handler) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	delivered, err := h.service.ResendOTP(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrResendCooldown) {
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Wait before requesting another code")
			return
		}
		response.Error(c, http.StatusInternalServerError, "RESEND_FAILED", "Failed to issue a new code")
		return
	}

	if !delivered {
		response.Message(c, http.StatusAccepted,
			"Code issued but could not be delivered. Try again shortly.", nil)
		return
	}
	response.Message(c, http.StatusAccepted,
		"If the email needs verification, a code has been sent.", nil)
}
