package v1

import (
	"net/http"

	"github.com/courseforge/courseforge/internal/api/dto"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/service"
	"github.com/courseforge/courseforge/internal/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	onboarding service.OnboardingService
	log        *logger.Logger
}

func NewAuthHandler(onboarding service.OnboardingService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{onboarding: onboarding, log: log}
}

// SignUp creates a new user account. The first account ever created is
// bootstrapped as the main admin.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := validator.ValidateRequest(&req); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.onboarding.SignUp(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to sign up user", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
