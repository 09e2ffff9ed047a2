package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/repository"
)

func TestNotificationListAndRead(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)

	for i := 0; i < 3; i++ {
		err := svc.Notify(&domain.Notification{
			RecipientEmail: "brand@flow.test",
			Type:           domain.NotifyNewReview,
			ContentItemID:  uint64(i + 1),
			Message:        "awaiting review",
		})
		assert.NoError(t, err)
	}

	summary, err := svc.GetUnreadCount("brand@flow.test")
	assert.NoError(t, err)
	assert.Equal(t, 3, summary.TotalUnread)

	list, err := svc.GetList("brand@flow.test", false, 1, 10)
	assert.NoError(t, err)
	assert.Len(t, list.Items, 3)

	err = svc.MarkAsRead("brand@flow.test", list.Items[0].ID)
	assert.NoError(t, err)

	summary, err = svc.GetUnreadCount("brand@flow.test")
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.TotalUnread)

	err = svc.MarkAllAsRead("brand@flow.test")
	assert.NoError(t, err)
	summary, _ = svc.GetUnreadCount("brand@flow.test")
	assert.Equal(t, 0, summary.TotalUnread)
}

func TestNotificationOwnershipChecks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)

	err := svc.Notify(&domain.Notification{
		RecipientEmail: "brand@flow.test",
		Type:           domain.NotifyNewReview,
		Message:        "awaiting review",
	})
	assert.NoError(t, err)

	list, err := svc.GetList("brand@flow.test", false, 1, 10)
	assert.NoError(t, err)

	err = svc.MarkAsRead("other@flow.test", list.Items[0].ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = svc.Delete("other@flow.test", list.Items[0].ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = svc.Delete("brand@flow.test", list.Items[0].ID)
	assert.NoError(t, err)

	err = svc.Delete("brand@flow.test", list.Items[0].ID)
	assert.ErrorIs(t, err, common.ErrNotificationNotFound)
}
