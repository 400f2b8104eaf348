package v1

import (
	"net/http"

	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	onboarding service.OnboardingService
	log        *logger.Logger
}

func NewUserHandler(onboarding service.OnboardingService, log *logger.Logger) *UserHandler {
	return &UserHandler{onboarding: onboarding, log: log}
}

// Delete removes a user account along with its courses
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("user id is required").
			WithHint("User ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.onboarding.DeleteUser(c.Request.Context(), id); err != nil {
		h.log.Error("Failed to delete user", "error", err, "user_id", id)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}
