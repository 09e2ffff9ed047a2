package domain

import "time"

// NotificationType classifies workflow notifications
type NotificationType string

// Notification types
const (
	NotifyNewReview         NotificationType = "new_review"
	NotifyContentApproved   NotificationType = "content_approved"
	NotifyContentRejected   NotificationType = "content_rejected"
	NotifyRevisionRequested NotificationType = "revision_requested"
	NotifyAssignmentWarning NotificationType = "assignment_warning"
)

// Notification is created as a side effect of workflow transitions;
// only is_read is ever mutated afterwards
type Notification struct {
	ID             uint64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RecipientEmail string           `gorm:"column:recipient_email;index;size:191" json:"recipient_email"`
	Type           NotificationType `gorm:"column:type;size:32" json:"type"`
	ContentItemID  uint64           `gorm:"column:content_item_id;index" json:"content_item_id"`
	Message        string           `gorm:"column:message;type:text" json:"message"`
	ActionURL      string           `gorm:"column:action_url" json:"action_url,omitempty"`
	IsRead         bool             `gorm:"column:is_read" json:"is_read"`
	CreatedAt      time.Time        `gorm:"column:created_at" json:"created_at"`
}

// TableName returns the table name
func (Notification) TableName() string {
	return "notifications"
}

// NotificationSummaryResponse represents unread count response
type NotificationSummaryResponse struct {
	TotalUnread int `json:"total_unread"`
}

// NotificationListResponse represents notification list response
type NotificationListResponse struct {
	Items       []Notification `json:"items"`
	Total       int64          `json:"total"`
	UnreadCount int64          `json:"unread_count"`
	Page        int            `json:"page"`
	Limit       int            `json:"limit"`
	TotalPages  int            `json:"total_pages"`
}
