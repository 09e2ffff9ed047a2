package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/middleware"
	"github.com/flowhq/approval-backend/internal/repository"
	"github.com/flowhq/approval-backend/internal/service"
)

// ContentHandler handles content submission and listing requests
type ContentHandler struct {
	service *service.ContentService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(service *service.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// Submit handles POST /api/v1/content
func (h *ContentHandler) Submit(c *gin.Context) {
	var req domain.SubmitContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.service.Submit(c.Request.Context(), middleware.GetUserEmail(c), &req)
	if err != nil {
		respondError(c, err, "Content submission failed")
		return
	}

	middleware.CountContentSubmission(string(result.Content.ContentType))

	var meta *common.Meta
	if result.Warning != "" {
		meta = &common.Meta{Warning: result.Warning}
	}
	common.CreatedResponse(c, result.Content, meta)
}

// SubmitRevision handles POST /api/v1/content/:id/revision
func (h *ContentHandler) SubmitRevision(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", nil)
		return
	}

	var req domain.SubmitRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.service.SubmitRevision(c.Request.Context(), middleware.GetUserEmail(c), id, &req)
	if err != nil {
		respondError(c, err, "Revision submission failed")
		return
	}

	common.SuccessResponse(c, result.Content, nil)
}

// GetList handles GET /api/v1/content
func (h *ContentHandler) GetList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := repository.ContentFilter{
		Status:      c.Query("status"),
		ContentType: c.Query("content_type"),
		Priority:    c.Query("priority"),
	}
	if c.Query("mine") == "true" {
		filter.CreatedBy = middleware.GetUserEmail(c)
	}

	result, err := h.service.GetList(filter, page, limit)
	if err != nil {
		respondError(c, err, "Content listing failed")
		return
	}

	common.SuccessResponse(c, result.Items, &common.Meta{
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
	})
}

// Get handles GET /api/v1/content/:id
func (h *ContentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", nil)
		return
	}

	detail, err := h.service.Get(id)
	if err != nil {
		respondError(c, err, "Content lookup failed")
		return
	}

	common.SuccessResponse(c, detail, nil)
}

// Delete handles DELETE /api/v1/content/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", nil)
		return
	}

	err = h.service.Delete(c.Request.Context(), id, middleware.GetUserEmail(c), middleware.GetUserRole(c))
	if err != nil {
		respondError(c, err, "Content deletion failed")
		return
	}

	common.SuccessResponse(c, gin.H{"success": true}, nil)
}
