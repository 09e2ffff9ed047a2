package domain

import (
	"fmt"
	"time"
)

// ReviewStatus is one reviewer's decision state for one content version
type ReviewStatus string

// Review statuses. A review is created pending and mutated exactly once
// to a terminal status by its assigned reviewer.
const (
	ReviewPending           ReviewStatus = "pending"
	ReviewApproved          ReviewStatus = "approved"
	ReviewRejected          ReviewStatus = "rejected"
	ReviewRevisionRequested ReviewStatus = "revision_requested"
)

// ParseDecision validates a terminal review decision
func ParseDecision(s string) (ReviewStatus, error) {
	switch ReviewStatus(s) {
	case ReviewApproved, ReviewRejected, ReviewRevisionRequested:
		return ReviewStatus(s), nil
	}
	return "", fmt.Errorf("invalid review decision: %q", s)
}

// IsTerminal reports whether the status is a final decision
func (s ReviewStatus) IsTerminal() bool {
	return s == ReviewApproved || s == ReviewRejected || s == ReviewRevisionRequested
}

// Review is one reviewer's pending or terminal decision against one
// version of a content item
type Review struct {
	ID                uint64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ContentItemID     uint64       `gorm:"column:content_item_id;index" json:"content_item_id"`
	ContentVersion    int          `gorm:"column:content_version;index" json:"content_version"`
	ReviewerEmail     string       `gorm:"column:reviewer_email;index;size:191" json:"reviewer_email"`
	ReviewerRole      UserRole     `gorm:"column:reviewer_role;size:32" json:"reviewer_role"`
	Status            ReviewStatus `gorm:"column:status;index;size:32" json:"status"`
	Feedback          string       `gorm:"column:feedback;type:text" json:"feedback"`
	ReviewedAt        *time.Time   `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	TimeToReviewHours float64      `gorm:"column:time_to_review_hours" json:"time_to_review_hours"`
	IsFinalApproval   bool         `gorm:"column:is_final_approval" json:"is_final_approval"`
	CreatedAt         time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         time.Time    `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name
func (Review) TableName() string {
	return "reviews"
}

// DecisionRequest is a reviewer's decision payload
type DecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
	Feedback string `json:"feedback"`
}

// QueueItem bundles a pending review with its content item for the
// reviewer queue
type QueueItem struct {
	Review   Review       `json:"review"`
	Content  *ContentItem `json:"content"`
	Siblings []Review     `json:"sibling_reviews"`
}
