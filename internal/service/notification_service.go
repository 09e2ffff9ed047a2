package service

import (
	"fmt"
	"math"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/repository"
	"github.com/flowhq/approval-backend/pkg/logger"
	"github.com/flowhq/approval-backend/pkg/mailer"
)

// NotificationService handles in-app notifications and their email mirror
type NotificationService struct {
	repo   *repository.NotificationRepository
	mailer mailer.Mailer
}

// NewNotificationService creates a new NotificationService. mailer may be
// nil; notifications then stay in-app only.
func NewNotificationService(repo *repository.NotificationRepository, m mailer.Mailer) *NotificationService {
	return &NotificationService{repo: repo, mailer: m}
}

// Notify writes a notification and mirrors it to email when a mailer is
// configured. Email failures are logged, never propagated; the in-app
// record is the source of truth.
func (s *NotificationService) Notify(n *domain.Notification) error {
	if err := s.repo.Create(n); err != nil {
		return err
	}
	s.sendEmail(*n)
	return nil
}

// NotifyBatch writes a set of notifications in one insert
func (s *NotificationService) NotifyBatch(notifications []domain.Notification) error {
	if err := s.repo.CreateBatch(notifications); err != nil {
		return err
	}
	for _, n := range notifications {
		s.sendEmail(n)
	}
	return nil
}

func (s *NotificationService) sendEmail(n domain.Notification) {
	if s.mailer == nil {
		return
	}
	subject := emailSubject(n.Type)
	html := fmt.Sprintf("<p>%s</p>", n.Message)
	if n.ActionURL != "" {
		html += fmt.Sprintf(`<p><a href="%s">View content</a></p>`, n.ActionURL)
	}
	if err := s.mailer.Send(n.RecipientEmail, subject, html); err != nil {
		logger.Warn("notification email to %s failed: %v", n.RecipientEmail, err)
	}
}

func emailSubject(t domain.NotificationType) string {
	switch t {
	case domain.NotifyNewReview:
		return "New content awaiting your review"
	case domain.NotifyContentApproved:
		return "Your content was approved"
	case domain.NotifyContentRejected:
		return "Your content was rejected"
	case domain.NotifyRevisionRequested:
		return "Revisions requested on your content"
	case domain.NotifyAssignmentWarning:
		return "Reviewer assignment warning"
	}
	return "Content approval update"
}

// GetUnreadCount returns the unread notification count for a recipient
func (s *NotificationService) GetUnreadCount(email string) (*domain.NotificationSummaryResponse, error) {
	count, err := s.repo.GetUnreadCount(email)
	if err != nil {
		return nil, err
	}
	return &domain.NotificationSummaryResponse{TotalUnread: int(count)}, nil
}

// GetList returns paginated notifications for a recipient
func (s *NotificationService) GetList(email string, unreadOnly bool, page, limit int) (*domain.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit
	notifications, total, err := s.repo.GetList(email, unreadOnly, offset, limit)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.GetUnreadCount(email)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &domain.NotificationListResponse{
		Items:       notifications,
		Total:       total,
		UnreadCount: unreadCount,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
	}, nil
}

// MarkAsRead marks a notification as read after ownership check
func (s *NotificationService) MarkAsRead(email string, id uint64) error {
	n, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if n == nil {
		return common.ErrNotificationNotFound
	}
	if n.RecipientEmail != email {
		return common.ErrForbidden
	}
	return s.repo.MarkAsRead(id)
}

// MarkAllAsRead marks all notifications as read for a recipient
func (s *NotificationService) MarkAllAsRead(email string) error {
	return s.repo.MarkAllAsRead(email)
}

// Delete removes a notification after ownership check
func (s *NotificationService) Delete(email string, id uint64) error {
	n, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if n == nil {
		return common.ErrNotificationNotFound
	}
	if n.RecipientEmail != email {
		return common.ErrForbidden
	}
	return s.repo.Delete(id)
}
