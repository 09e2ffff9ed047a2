package service

import (
	"context"
	"time"

	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/repository"
	"github.com/flowhq/approval-backend/pkg/cache"
)

// DashboardService computes reporting aggregates over the pipeline.
// Everything here is read-only and cached; nothing in this service ever
// changes content state.
type DashboardService struct {
	contentRepo *repository.ContentRepository
	reviewRepo  *repository.ReviewRepository
	userRepo    *repository.UserRepository
	cache       cache.Service
	slaDuration time.Duration
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	contentRepo *repository.ContentRepository,
	reviewRepo *repository.ReviewRepository,
	userRepo *repository.UserRepository,
	c cache.Service,
	slaDuration time.Duration,
) *DashboardService {
	return &DashboardService{
		contentRepo: contentRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		cache:       c,
		slaDuration: slaDuration,
	}
}

// GetStats returns the dashboard aggregate
func (s *DashboardService) GetStats(ctx context.Context) (*domain.DashboardStatsResponse, error) {
	cacheKey := cache.PrefixDashboard + "stats"
	var cached domain.DashboardStatsResponse
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && !cached.GeneratedAt.IsZero() {
		return &cached, nil
	}

	byStatus, err := s.contentRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	byType, err := s.contentRepo.CountByType()
	if err != nil {
		return nil, err
	}
	reviewCounts, err := s.reviewRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	avgHours, err := s.reviewRepo.AverageTimeToReview(time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	breaches, err := s.breaches()
	if err != nil {
		return nil, err
	}

	stats := &domain.DashboardStatsResponse{
		TotalContent:   total,
		ByStatus:       byStatus,
		ByType:         byType,
		PendingReviews: reviewCounts[string(domain.ReviewPending)],
		ApprovalRate:   approvalRate(byStatus),
		AvgReviewHours: avgHours,
		SLABreachCount: len(breaches),
		GeneratedAt:    time.Now(),
	}

	_ = s.cache.Set(ctx, cacheKey, stats, cache.TTLDashboard)
	return stats, nil
}

// GetActivity returns the recent activity feed: latest decisions followed
// by latest submissions, newest first
func (s *DashboardService) GetActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}

	decided, err := s.reviewRepo.FindRecentDecided(limit)
	if err != nil {
		return nil, err
	}
	recent, err := s.contentRepo.FindRecent(limit)
	if err != nil {
		return nil, err
	}

	titles := make(map[uint64]string, len(recent))
	statuses := make(map[uint64]domain.ContentStatus, len(recent))
	for _, c := range recent {
		titles[c.ID] = c.Title
		statuses[c.ID] = c.Status
	}

	entries := make([]domain.ActivityEntry, 0, limit)
	for _, r := range decided {
		title := titles[r.ContentItemID]
		if title == "" {
			c, err := s.contentRepo.FindByID(r.ContentItemID)
			if err != nil {
				return nil, err
			}
			if c == nil {
				continue
			}
			title = c.Title
			statuses[r.ContentItemID] = c.Status
		}
		entries = append(entries, domain.ActivityEntry{
			ContentItemID: r.ContentItemID,
			Title:         title,
			Actor:         r.ReviewerEmail,
			Action:        string(r.Status),
			Status:        statuses[r.ContentItemID],
			OccurredAt:    derefTime(r.ReviewedAt),
		})
		if len(entries) == limit {
			break
		}
	}

	for _, c := range recent {
		if len(entries) == limit {
			break
		}
		entries = append(entries, domain.ActivityEntry{
			ContentItemID: c.ID,
			Title:         c.Title,
			Actor:         c.CreatedBy,
			Action:        "submitted",
			Status:        c.Status,
			OccurredAt:    c.CreatedAt,
		})
	}

	return entries, nil
}

// GetSLABreaches lists content items that have been in review past the
// SLA window
func (s *DashboardService) GetSLABreaches(ctx context.Context) (*domain.SLABreachListResponse, error) {
	breaches, err := s.breaches()
	if err != nil {
		return nil, err
	}
	return &domain.SLABreachListResponse{
		Breaches: breaches,
		SLAHours: s.slaDuration.Hours(),
	}, nil
}

func (s *DashboardService) breaches() ([]domain.SLABreach, error) {
	cutoff := time.Now().Add(-s.slaDuration)
	items, err := s.contentRepo.FindInReviewOlderThan(cutoff)
	if err != nil {
		return nil, err
	}

	breaches := make([]domain.SLABreach, 0, len(items))
	for _, item := range items {
		inReview := time.Since(item.UpdatedAt).Hours()
		breaches = append(breaches, domain.SLABreach{
			Content:      item,
			InReviewFor:  inReview,
			SLAHours:     s.slaDuration.Hours(),
			OverdueHours: inReview - s.slaDuration.Hours(),
		})
	}
	return breaches, nil
}

// GetAnalytics returns the 30-day reporting view
func (s *DashboardService) GetAnalytics(ctx context.Context) (*domain.AnalyticsResponse, error) {
	cacheKey := cache.PrefixAnalytics + "summary"
	var cached domain.AnalyticsResponse
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && !cached.GeneratedAt.IsZero() {
		return &cached, nil
	}

	reviewsByStatus, err := s.reviewRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	contentByType, err := s.contentRepo.CountByType()
	if err != nil {
		return nil, err
	}
	usersByRole, err := s.userRepo.CountByRole()
	if err != nil {
		return nil, err
	}
	byStatus, err := s.contentRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	const windowDays = 30
	avgHours, err := s.reviewRepo.AverageTimeToReview(time.Now().AddDate(0, 0, -windowDays))
	if err != nil {
		return nil, err
	}

	resp := &domain.AnalyticsResponse{
		ReviewsByStatus: reviewsByStatus,
		ContentByType:   contentByType,
		UsersByRole:     usersByRole,
		AvgReviewHours:  avgHours,
		ApprovalRate:    approvalRate(byStatus),
		WindowDays:      windowDays,
		GeneratedAt:     time.Now(),
	}

	_ = s.cache.Set(ctx, cacheKey, resp, cache.TTLAnalytics)
	return resp, nil
}

// approvalRate is approved+published over all decided items
func approvalRate(byStatus map[string]int64) float64 {
	approved := byStatus[string(domain.StatusApproved)] + byStatus[string(domain.StatusPublished)]
	decided := approved + byStatus[string(domain.StatusRejected)]
	if decided == 0 {
		return 0
	}
	return float64(approved) / float64(decided)
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
