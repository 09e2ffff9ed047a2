package domain

import "time"

// ContentVersion is an immutable snapshot of uploaded files plus a change
// summary, created when a creator resubmits after revisions were requested.
// Append-only audit trail; never mutated after creation.
type ContentVersion struct {
	ID             uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ContentItemID  uint64     `gorm:"column:content_item_id;index" json:"content_item_id"`
	VersionNumber  int        `gorm:"column:version_number" json:"version_number"`
	FileURLs       StringList `gorm:"column:file_urls;type:json" json:"file_urls"`
	ChangeSummary  string     `gorm:"column:change_summary;type:text" json:"change_summary"`
	ReviewFeedback string     `gorm:"column:review_feedback;type:text" json:"review_feedback"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
}

// TableName returns the table name
func (ContentVersion) TableName() string {
	return "content_versions"
}
