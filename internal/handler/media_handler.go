package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/service"
)

// MediaHandler handles attachment uploads
type MediaHandler struct {
	service *service.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(service *service.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// Upload handles POST /api/v1/media/upload
func (h *MediaHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing file field", err)
		return
	}

	result, err := h.service.Upload(c.Request.Context(), header)
	if err != nil {
		respondError(c, err, "Upload failed")
		return
	}

	common.CreatedResponse(c, result, nil)
}
