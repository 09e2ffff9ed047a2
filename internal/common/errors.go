package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Content errors
	ErrContentNotFound     = errors.New("content item not found")
	ErrNotAwaitingRevision = errors.New("content is not awaiting revisions")

	// Review errors
	ErrReviewNotFound       = errors.New("review not found")
	ErrReviewAlreadyDecided = errors.New("review has already been decided")
	ErrStaleReviewVersion   = errors.New("review belongs to a superseded content version")
	ErrContentNotInReview   = errors.New("content is no longer in review")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// Workflow errors
	ErrWorkflowNotFound = errors.New("approval workflow not found")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
