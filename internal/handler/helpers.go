package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowhq/approval-backend/internal/common"
)

// respondError maps business errors to HTTP statuses and writes the
// standard error envelope
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, common.ErrNotAwaitingRevision),
		errors.Is(err, common.ErrContentNotInReview):
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrExpiredToken):
		common.ErrorResponse(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, common.ErrNotFound),
		errors.Is(err, common.ErrContentNotFound),
		errors.Is(err, common.ErrReviewNotFound),
		errors.Is(err, common.ErrNotificationNotFound),
		errors.Is(err, common.ErrWorkflowNotFound),
		errors.Is(err, common.ErrUserNotFound):
		common.ErrorResponse(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, common.ErrReviewAlreadyDecided),
		errors.Is(err, common.ErrStaleReviewVersion),
		errors.Is(err, common.ErrUserAlreadyExists):
		common.ErrorResponse(c, http.StatusConflict, err.Error(), nil)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, fallback, err)
	}
}
