package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/middleware"
	"github.com/flowhq/approval-backend/internal/service"
)

// ReviewHandler handles reviewer queue and decision requests
type ReviewHandler struct {
	service *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(service *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// GetQueue handles GET /api/v1/reviews/queue
func (h *ReviewHandler) GetQueue(c *gin.Context) {
	items, err := h.service.GetQueue(middleware.GetUserEmail(c))
	if err != nil {
		respondError(c, err, "Review queue lookup failed")
		return
	}

	common.SuccessResponse(c, items, &common.Meta{Total: int64(len(items))})
}

// GetHistory handles GET /api/v1/reviews/history
func (h *ReviewHandler) GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reviews, err := h.service.GetHistory(middleware.GetUserEmail(c), limit)
	if err != nil {
		respondError(c, err, "Review history lookup failed")
		return
	}

	common.SuccessResponse(c, reviews, nil)
}

// Decide handles POST /api/v1/reviews/:id/decision
func (h *ReviewHandler) Decide(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid review ID", nil)
		return
	}

	var req domain.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	review, err := h.service.Decide(c.Request.Context(), middleware.GetUserEmail(c), id, &req)
	if err != nil {
		respondError(c, err, "Decision submission failed")
		return
	}

	middleware.CountReviewDecision(string(review.Status))
	common.SuccessResponse(c, review, nil)
}
