package domain

import (
	"fmt"
	"math"
	"time"
)

// ContentType is the closed set of submittable content kinds
type ContentType string

// Content types
const (
	TypeBlogPost        ContentType = "blog_post"
	TypeSocialMediaPost ContentType = "social_media_post"
	TypeEmailCampaign   ContentType = "email_campaign"
	TypeAdCreative      ContentType = "ad_creative"
	TypePressRelease    ContentType = "press_release"
	TypeCustom          ContentType = "custom"
)

// ParseContentType validates a content type string
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case TypeBlogPost, TypeSocialMediaPost, TypeEmailCampaign, TypeAdCreative, TypePressRelease, TypeCustom:
		return ContentType(s), nil
	}
	return "", fmt.Errorf("invalid content type: %q", s)
}

// ContentStatus is the lifecycle state of a content item
type ContentStatus string

// Content statuses
const (
	StatusDraft           ContentStatus = "draft"
	StatusInReview        ContentStatus = "in_review"
	StatusRevisionsNeeded ContentStatus = "revisions_needed"
	StatusApproved        ContentStatus = "approved"
	StatusPublished       ContentStatus = "published"
	StatusRejected        ContentStatus = "rejected"
)

// PriorityLevel is derived from days remaining until the target publish date
type PriorityLevel string

// Priority levels
const (
	PriorityLow    PriorityLevel = "low"
	PriorityMedium PriorityLevel = "medium"
	PriorityHigh   PriorityLevel = "high"
	PriorityUrgent PriorityLevel = "urgent"
)

// PriorityForDate derives priority from the target publish date:
// <=1 day urgent, <=3 high, <=7 medium, otherwise low.
// A missing date defaults to medium.
func PriorityForDate(target *time.Time, now time.Time) PriorityLevel {
	if target == nil {
		return PriorityMedium
	}
	days := int(math.Ceil(target.Sub(now).Hours() / 24))
	switch {
	case days <= 1:
		return PriorityUrgent
	case days <= 3:
		return PriorityHigh
	case days <= 7:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// ContentItem is a unit of material submitted for approval.
// Status transitions are driven solely by the aggregate of Review records
// whose content_version equals Version; Version only ever increases.
type ContentItem struct {
	ID                 uint64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title              string        `gorm:"column:title" json:"title"`
	Description        string        `gorm:"column:description;type:text" json:"description"`
	ContentType        ContentType   `gorm:"column:content_type;index;size:32" json:"content_type"`
	CustomType         string        `gorm:"column:custom_type" json:"custom_type,omitempty"`
	FileURLs           StringList    `gorm:"column:file_urls;type:json" json:"file_urls"`
	Status             ContentStatus `gorm:"column:status;index;size:32" json:"status"`
	PriorityLevel      PriorityLevel `gorm:"column:priority_level;size:16" json:"priority_level"`
	Version            int           `gorm:"column:version" json:"version"`
	TargetPublishDate  *time.Time    `gorm:"column:target_publish_date" json:"target_publish_date,omitempty"`
	EstimatedSpend     float64       `gorm:"column:estimated_spend" json:"estimated_spend"`
	MentionsCompetitors bool         `gorm:"column:mentions_competitors" json:"mentions_competitors"`
	Department         string        `gorm:"column:department" json:"department,omitempty"`
	CreatedBy          string        `gorm:"column:created_by;index;size:191" json:"created_by"`
	CurrentReviewers   StringList    `gorm:"column:current_reviewers;type:json" json:"current_reviewers"`
	CreatedAt          time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name
func (ContentItem) TableName() string {
	return "content_items"
}

// SubmitContentRequest is the submission payload
type SubmitContentRequest struct {
	Title               string   `json:"title" binding:"required"`
	Description         string   `json:"description"`
	ContentType         string   `json:"content_type" binding:"required"`
	CustomType          string   `json:"custom_type"`
	FileURLs            []string `json:"file_urls" binding:"required,min=1,max=10"`
	TargetPublishDate   string   `json:"target_publish_date" binding:"required"`
	EstimatedSpend      float64  `json:"estimated_spend"`
	MentionsCompetitors bool     `json:"mentions_competitors"`
	Department          string   `json:"department"`
}

// SubmitRevisionRequest is the resubmission payload after revisions_needed
type SubmitRevisionRequest struct {
	FileURLs      []string `json:"file_urls" binding:"required,min=1,max=10"`
	ChangeSummary string   `json:"change_summary" binding:"required"`
}

// ContentDetailResponse bundles a content item with its review lineage
type ContentDetailResponse struct {
	Content  *ContentItem     `json:"content"`
	Reviews  []Review         `json:"reviews"`
	Versions []ContentVersion `json:"versions"`
}

// ContentListResponse is a paginated content listing
type ContentListResponse struct {
	Items      []ContentItem `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}
