package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/flowhq/approval-backend/internal/approval"
	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/repository"
	"github.com/flowhq/approval-backend/pkg/cache"
	"github.com/flowhq/approval-backend/pkg/logger"
)

// ReviewService handles the reviewer queue and decision submission
type ReviewService struct {
	db            *gorm.DB
	reviewRepo    *repository.ReviewRepository
	contentRepo   *repository.ContentRepository
	notifications *NotificationService
	cache         cache.Service
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	db *gorm.DB,
	reviewRepo *repository.ReviewRepository,
	contentRepo *repository.ContentRepository,
	notifications *NotificationService,
	c cache.Service,
) *ReviewService {
	return &ReviewService{
		db:            db,
		reviewRepo:    reviewRepo,
		contentRepo:   contentRepo,
		notifications: notifications,
		cache:         c,
	}
}

// GetQueue returns the reviewer's open reviews, each with its content item
// and the sibling reviews of the same round
func (s *ReviewService) GetQueue(email string) ([]domain.QueueItem, error) {
	pending, err := s.reviewRepo.FindPendingByReviewer(email)
	if err != nil {
		return nil, err
	}

	items := make([]domain.QueueItem, 0, len(pending))
	for _, review := range pending {
		content, err := s.contentRepo.FindByID(review.ContentItemID)
		if err != nil {
			return nil, err
		}
		if content == nil || content.Version != review.ContentVersion {
			// superseded round, not actionable
			continue
		}
		siblings, err := s.reviewRepo.FindByContentAndVersion(review.ContentItemID, review.ContentVersion)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.QueueItem{
			Review:   review,
			Content:  content,
			Siblings: siblings,
		})
	}
	return items, nil
}

// GetHistory returns the reviewer's most recent decisions
func (s *ReviewService) GetHistory(email string, limit int) ([]domain.Review, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.reviewRepo.FindDecidedByReviewer(email, limit)
}

// Decide records a reviewer's decision and recomputes the content status
// from the full review round. The content row is locked for the duration
// of the transaction so concurrent decisions on the same item serialize
// instead of racing the aggregate.
func (s *ReviewService) Decide(ctx context.Context, reviewerEmail string, reviewID uint64, req *domain.DecisionRequest) (*domain.Review, error) {
	decision, err := domain.ParseDecision(req.Decision)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	if decision != domain.ReviewApproved && req.Feedback == "" {
		return nil, fmt.Errorf("%w: feedback is required when rejecting or requesting revisions", common.ErrInvalidInput)
	}

	var (
		review  *domain.Review
		item    *domain.ContentItem
		outcome approval.Outcome
	)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		reviews := s.reviewRepo.WithTx(tx)
		contents := s.contentRepo.WithTx(tx)

		review, err = reviews.FindByID(reviewID)
		if err != nil {
			return err
		}
		if review == nil {
			return common.ErrReviewNotFound
		}
		if review.ReviewerEmail != reviewerEmail {
			return common.ErrForbidden
		}
		if review.Status != domain.ReviewPending {
			return common.ErrReviewAlreadyDecided
		}

		item, err = contents.FindByIDForUpdate(review.ContentItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return common.ErrContentNotFound
		}
		if review.ContentVersion != item.Version {
			return common.ErrStaleReviewVersion
		}
		if item.Status != domain.StatusInReview {
			return common.ErrContentNotInReview
		}

		now := time.Now()
		review.Status = decision
		review.Feedback = req.Feedback
		review.ReviewedAt = &now
		review.TimeToReviewHours = now.Sub(review.CreatedAt).Hours()

		siblings, err := reviews.FindByContentAndVersion(item.ID, item.Version)
		if err != nil {
			return err
		}
		for i := range siblings {
			if siblings[i].ID == review.ID {
				siblings[i].Status = decision
			}
		}

		outcome = approval.Decide(siblings, decision)
		review.IsFinalApproval = outcome.FinalApproval

		if err := reviews.Update(review); err != nil {
			return err
		}
		if outcome.StatusChanged {
			if err := contents.UpdateStatus(item.ID, outcome.NewStatus); err != nil {
				return err
			}
			item.Status = outcome.NewStatus
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome.Notify != "" {
		s.notifySubmitter(item, review, outcome)
	}
	s.invalidate(ctx)

	return review, nil
}

func (s *ReviewService) notifySubmitter(item *domain.ContentItem, review *domain.Review, outcome approval.Outcome) {
	var message string
	switch outcome.Notify {
	case domain.NotifyContentApproved:
		message = fmt.Sprintf("%q was approved by all reviewers", item.Title)
	case domain.NotifyContentRejected:
		message = fmt.Sprintf("%q was rejected by %s: %s", item.Title, review.ReviewerEmail, review.Feedback)
	case domain.NotifyRevisionRequested:
		message = fmt.Sprintf("%s requested revisions on %q: %s", review.ReviewerEmail, item.Title, review.Feedback)
	default:
		return
	}

	err := s.notifications.Notify(&domain.Notification{
		RecipientEmail: item.CreatedBy,
		Type:           outcome.Notify,
		ContentItemID:  item.ID,
		Message:        message,
		ActionURL:      contentURL(item.ID),
	})
	if err != nil {
		logger.Warn("submitter notification for content %d failed: %v", item.ID, err)
	}
}

func (s *ReviewService) invalidate(ctx context.Context) {
	err := s.cache.InvalidateByPrefix(ctx, cache.PrefixContent, cache.PrefixReview, cache.PrefixDashboard, cache.PrefixAnalytics)
	if err != nil {
		logger.Warn("review cache invalidation failed: %v", err)
	}
}
