package v1

import (
	"net/http"

	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, log: log}
}

// Summary returns the aggregate counters for the admin dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	resp, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to build dashboard summary", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
