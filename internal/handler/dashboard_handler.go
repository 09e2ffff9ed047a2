package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/service"
)

// DashboardHandler handles dashboard and analytics requests
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetStats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Dashboard stats lookup failed")
		return
	}

	common.SuccessResponse(c, stats, nil)
}

// GetActivity handles GET /api/v1/dashboard/activity
func (h *DashboardHandler) GetActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.service.GetActivity(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Activity feed lookup failed")
		return
	}

	common.SuccessResponse(c, entries, nil)
}

// GetSLABreaches handles GET /api/v1/dashboard/sla-breaches
func (h *DashboardHandler) GetSLABreaches(c *gin.Context) {
	breaches, err := h.service.GetSLABreaches(c.Request.Context())
	if err != nil {
		respondError(c, err, "SLA breach lookup failed")
		return
	}

	common.SuccessResponse(c, breaches, nil)
}

// GetAnalytics handles GET /api/v1/analytics
func (h *DashboardHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.service.GetAnalytics(c.Request.Context())
	if err != nil {
		respondError(c, err, "Analytics lookup failed")
		return
	}

	common.SuccessResponse(c, analytics, nil)
}
