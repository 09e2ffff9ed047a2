package domain

import "time"

// DashboardStatsResponse aggregates pipeline state for the dashboard
type DashboardStatsResponse struct {
	TotalContent   int64            `json:"total_content"`
	ByStatus       map[string]int64 `json:"by_status"`
	ByType         map[string]int64 `json:"by_type"`
	PendingReviews int64            `json:"pending_reviews"`
	ApprovalRate   float64          `json:"approval_rate"`
	AvgReviewHours float64          `json:"avg_review_hours"`
	SLABreachCount int              `json:"sla_breach_count"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

// ActivityEntry is one row in the recent activity feed
type ActivityEntry struct {
	ContentItemID uint64        `json:"content_item_id"`
	Title         string        `json:"title"`
	Actor         string        `json:"actor"`
	Action        string        `json:"action"`
	Status        ContentStatus `json:"status"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

// SLABreach is a content item that has sat in review past the SLA window.
// Reporting only; breaches never change content state.
type SLABreach struct {
	Content      ContentItem `json:"content"`
	InReviewFor  float64     `json:"in_review_hours"`
	SLAHours     float64     `json:"sla_hours"`
	OverdueHours float64     `json:"overdue_hours"`
}

// SLABreachListResponse lists current SLA breaches
type SLABreachListResponse struct {
	Breaches []SLABreach `json:"breaches"`
	SLAHours float64     `json:"sla_hours"`
}

// AnalyticsResponse is the reporting view over the review pipeline
type AnalyticsResponse struct {
	ReviewsByStatus map[string]int64 `json:"reviews_by_status"`
	ContentByType   map[string]int64 `json:"content_by_type"`
	UsersByRole     map[string]int64 `json:"users_by_role"`
	AvgReviewHours  float64          `json:"avg_review_hours"`
	ApprovalRate    float64          `json:"approval_rate"`
	WindowDays      int              `json:"window_days"`
	GeneratedAt     time.Time        `json:"generated_at"`
}
