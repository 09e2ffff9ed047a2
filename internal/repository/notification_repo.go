package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/flowhq/approval-backend/internal/domain"
)

// NotificationRepository handles notification data operations
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *NotificationRepository) WithTx(tx *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: tx}
}

// GetUnreadCount returns the number of unread notifications for a recipient
func (r *NotificationRepository) GetUnreadCount(email string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Notification{}).
		Where("recipient_email = ? AND is_read = ?", email, false).
		Count(&count).Error
	return count, err
}

// GetList returns paginated notifications for a recipient, newest first
func (r *NotificationRepository) GetList(email string, unreadOnly bool, offset, limit int) ([]domain.Notification, int64, error) {
	var notifications []domain.Notification
	var total int64

	q := r.db.Model(&domain.Notification{}).Where("recipient_email = ?", email)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// FindByID returns a notification by ID, nil when not found
func (r *NotificationRepository) FindByID(id uint64) (*domain.Notification, error) {
	var notification domain.Notification
	err := r.db.First(&notification, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

// MarkAsRead marks a notification as read
func (r *NotificationRepository) MarkAsRead(id uint64) error {
	return r.db.Model(&domain.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

// MarkAllAsRead marks all notifications as read for a recipient
func (r *NotificationRepository) MarkAllAsRead(email string) error {
	return r.db.Model(&domain.Notification{}).
		Where("recipient_email = ? AND is_read = ?", email, false).
		Update("is_read", true).Error
}

// Create inserts a new notification
func (r *NotificationRepository) Create(notification *domain.Notification) error {
	return r.db.Create(notification).Error
}

// CreateBatch inserts a set of notifications in one statement
func (r *NotificationRepository) CreateBatch(notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.Create(&notifications).Error
}

// Delete removes a notification
func (r *NotificationRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Notification{}, id).Error
}
