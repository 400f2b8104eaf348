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

type AdminHandler struct {
	onboarding service.OnboardingService
	log        *logger.Logger
}

func NewAdminHandler(onboarding service.OnboardingService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{onboarding: onboarding, log: log}
}

// List returns all admins along with all users for the management screen
func (h *AdminHandler) List(c *gin.Context) {
	resp, err := h.onboarding.ListAdmins(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list admins", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Add promotes an existing user to admin
func (h *AdminHandler) Add(c *gin.Context) {
	var req dto.AddAdminRequest
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

	resp, err := h.onboarding.PromoteAdmin(c.Request.Context(), req.Email)
	if err != nil {
		h.log.Error("Failed to promote admin", "error", err, "email", req.Email)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Remove demotes a regular admin back to a plain user
func (h *AdminHandler) Remove(c *gin.Context) {
	var req dto.RemoveAdminRequest
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

	if err := h.onboarding.DemoteAdmin(c.Request.Context(), req.Email); err != nil {
		h.log.Error("Failed to demote admin", "error", err, "email", req.Email)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "admin removed successfully"})
}
