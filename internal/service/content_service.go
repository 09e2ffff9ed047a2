package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/flowhq/approval-backend/internal/approval"
	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/repository"
	"github.com/flowhq/approval-backend/pkg/cache"
	"github.com/flowhq/approval-backend/pkg/logger"
)

// SubmitResult is a created or resubmitted content item plus an optional
// assignment warning for the response metadata
type SubmitResult struct {
	Content *domain.ContentItem
	Warning string
}

// ContentService handles content submission, resubmission, and listing
type ContentService struct {
	db            *gorm.DB
	contentRepo   *repository.ContentRepository
	reviewRepo    *repository.ReviewRepository
	versionRepo   *repository.VersionRepository
	userRepo      *repository.UserRepository
	workflows     *WorkflowService
	notifications *NotificationService
	cache         cache.Service
}

// NewContentService creates a new ContentService
func NewContentService(
	db *gorm.DB,
	contentRepo *repository.ContentRepository,
	reviewRepo *repository.ReviewRepository,
	versionRepo *repository.VersionRepository,
	userRepo *repository.UserRepository,
	workflows *WorkflowService,
	notifications *NotificationService,
	c cache.Service,
) *ContentService {
	return &ContentService{
		db:            db,
		contentRepo:   contentRepo,
		reviewRepo:    reviewRepo,
		versionRepo:   versionRepo,
		userRepo:      userRepo,
		workflows:     workflows,
		notifications: notifications,
		cache:         c,
	}
}

// Submit creates a content item, resolves its reviewer roster, and opens
// the first review round. When no eligible reviewer exists the submitter
// becomes the sole reviewer and the response carries a warning.
func (s *ContentService) Submit(ctx context.Context, creatorEmail string, req *domain.SubmitContentRequest) (*SubmitResult, error) {
	contentType, err := domain.ParseContentType(req.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	var target *time.Time
	if req.TargetPublishDate != "" {
		t, err := time.Parse("2006-01-02", req.TargetPublishDate)
		if err != nil {
			return nil, fmt.Errorf("%w: target_publish_date must be YYYY-MM-DD", common.ErrInvalidInput)
		}
		target = &t
	}

	now := time.Now()
	item := &domain.ContentItem{
		Title:               req.Title,
		Description:         req.Description,
		ContentType:         contentType,
		CustomType:          req.CustomType,
		FileURLs:            req.FileURLs,
		Status:              domain.StatusInReview,
		PriorityLevel:       domain.PriorityForDate(target, now),
		Version:             1,
		TargetPublishDate:   target,
		EstimatedSpend:      req.EstimatedSpend,
		MentionsCompetitors: req.MentionsCompetitors,
		Department:          req.Department,
		CreatedBy:           creatorEmail,
	}

	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	rules := s.workflows.ActiveRuleSet(ctx)
	reviewers := approval.Resolve(rules, item, users)

	warning := ""
	if len(reviewers) == 0 {
		reviewers = []string{creatorEmail}
		warning = "no eligible reviewers matched the assignment rules; submitter assigned as sole reviewer"
		logger.Warn("content %q by %s: %s", item.Title, creatorEmail, warning)
	}
	item.CurrentReviewers = reviewers

	roleByEmail := make(map[string]domain.UserRole, len(users))
	for _, u := range users {
		roleByEmail[u.Email] = u.UserRole
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.contentRepo.WithTx(tx).Create(item); err != nil {
			return err
		}
		snapshot := &domain.ContentVersion{
			ContentItemID: item.ID,
			VersionNumber: 1,
			FileURLs:      item.FileURLs,
			ChangeSummary: "initial submission",
		}
		if err := s.versionRepo.WithTx(tx).Create(snapshot); err != nil {
			return err
		}
		return s.reviewRepo.WithTx(tx).CreateBatch(pendingReviews(item, reviewers, roleByEmail))
	})
	if err != nil {
		return nil, err
	}

	s.notifyReviewers(item, reviewers)
	if warning != "" {
		_ = s.notifications.Notify(&domain.Notification{
			RecipientEmail: creatorEmail,
			Type:           domain.NotifyAssignmentWarning,
			ContentItemID:  item.ID,
			Message:        fmt.Sprintf("%q: %s", item.Title, warning),
			ActionURL:      contentURL(item.ID),
		})
	}
	s.invalidate(ctx)

	return &SubmitResult{Content: item, Warning: warning}, nil
}

// SubmitRevision opens a new review round after revisions were requested.
// The reviewer roster from the previous round is reused as-is; rules are
// not re-evaluated on resubmission.
func (s *ContentService) SubmitRevision(ctx context.Context, creatorEmail string, contentID uint64, req *domain.SubmitRevisionRequest) (*SubmitResult, error) {
	item, err := s.contentRepo.FindByID(contentID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, common.ErrContentNotFound
	}
	if item.CreatedBy != creatorEmail {
		return nil, common.ErrForbidden
	}
	if item.Status != domain.StatusRevisionsNeeded {
		return nil, common.ErrNotAwaitingRevision
	}

	previous, err := s.reviewRepo.FindByContentAndVersion(item.ID, item.Version)
	if err != nil {
		return nil, err
	}

	// roles carry over from the superseded round so role-based reporting
	// stays consistent even if a reviewer's directory role changed since
	roleByEmail := make(map[string]domain.UserRole, len(previous))
	for _, r := range previous {
		roleByEmail[r.ReviewerEmail] = r.ReviewerRole
	}
	for _, email := range item.CurrentReviewers {
		if _, ok := roleByEmail[email]; ok {
			continue
		}
		u, err := s.userRepo.FindByEmail(email)
		if err != nil {
			return nil, err
		}
		if u != nil {
			roleByEmail[email] = u.UserRole
		}
	}

	newVersion := item.Version + 1
	item.Version = newVersion
	item.FileURLs = req.FileURLs
	item.Status = domain.StatusInReview

	reviewers := item.CurrentReviewers

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.contentRepo.WithTx(tx).Update(item); err != nil {
			return err
		}
		snapshot := &domain.ContentVersion{
			ContentItemID:  item.ID,
			VersionNumber:  newVersion,
			FileURLs:       req.FileURLs,
			ChangeSummary:  req.ChangeSummary,
			ReviewFeedback: collectFeedback(previous),
		}
		if err := s.versionRepo.WithTx(tx).Create(snapshot); err != nil {
			return err
		}
		return s.reviewRepo.WithTx(tx).CreateBatch(pendingReviews(item, reviewers, roleByEmail))
	})
	if err != nil {
		return nil, err
	}

	s.notifyReviewers(item, reviewers)
	s.invalidate(ctx)

	return &SubmitResult{Content: item}, nil
}

// GetList returns paginated content items
func (s *ContentService) GetList(filter repository.ContentFilter, page, limit int) (*domain.ContentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := s.contentRepo.GetList(filter, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	return &domain.ContentListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// Get returns a content item with its full review and version lineage
func (s *ContentService) Get(id uint64) (*domain.ContentDetailResponse, error) {
	item, err := s.contentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, common.ErrContentNotFound
	}

	reviews, err := s.reviewRepo.FindByContent(id)
	if err != nil {
		return nil, err
	}
	versions, err := s.versionRepo.FindByContent(id)
	if err != nil {
		return nil, err
	}

	return &domain.ContentDetailResponse{
		Content:  item,
		Reviews:  reviews,
		Versions: versions,
	}, nil
}

// Delete removes a content item. Only the creator or an admin may delete.
func (s *ContentService) Delete(ctx context.Context, id uint64, requesterEmail string, requesterRole domain.UserRole) error {
	item, err := s.contentRepo.FindByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return common.ErrContentNotFound
	}
	if item.CreatedBy != requesterEmail && requesterRole != domain.RoleAdmin {
		return common.ErrForbidden
	}
	if err := s.contentRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ContentService) notifyReviewers(item *domain.ContentItem, reviewers []string) {
	notifications := make([]domain.Notification, 0, len(reviewers))
	for _, email := range reviewers {
		notifications = append(notifications, domain.Notification{
			RecipientEmail: email,
			Type:           domain.NotifyNewReview,
			ContentItemID:  item.ID,
			Message:        fmt.Sprintf("%q (v%d) is awaiting your review", item.Title, item.Version),
			ActionURL:      contentURL(item.ID),
		})
	}
	if err := s.notifications.NotifyBatch(notifications); err != nil {
		logger.Warn("reviewer notifications for content %d failed: %v", item.ID, err)
	}
}

func (s *ContentService) invalidate(ctx context.Context) {
	err := s.cache.InvalidateByPrefix(ctx, cache.PrefixContent, cache.PrefixDashboard, cache.PrefixAnalytics)
	if err != nil {
		logger.Warn("content cache invalidation failed: %v", err)
	}
}

// pendingReviews builds one pending review per roster member for the
// item's current version
func pendingReviews(item *domain.ContentItem, reviewers []string, roleByEmail map[string]domain.UserRole) []domain.Review {
	out := make([]domain.Review, 0, len(reviewers))
	for _, email := range reviewers {
		out = append(out, domain.Review{
			ContentItemID:  item.ID,
			ContentVersion: item.Version,
			ReviewerEmail:  email,
			ReviewerRole:   roleByEmail[email],
			Status:         domain.ReviewPending,
		})
	}
	return out
}

// collectFeedback concatenates the feedback of every rejecting or
// revision-requesting review from the round being superseded
func collectFeedback(reviews []domain.Review) string {
	var parts []string
	for _, r := range reviews {
		if r.Status != domain.ReviewRejected && r.Status != domain.ReviewRevisionRequested {
			continue
		}
		if strings.TrimSpace(r.Feedback) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", r.ReviewerEmail, r.Feedback))
	}
	return strings.Join(parts, "\n")
}

func contentURL(id uint64) string {
	return fmt.Sprintf("/content/%d", id)
}
