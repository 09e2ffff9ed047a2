package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/flowhq/approval-backend/internal/domain"
)

// ReviewRepository handles review data operations
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ReviewRepository) WithTx(tx *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: tx}
}

// FindByID returns a review by ID, nil when not found
func (r *ReviewRepository) FindByID(id uint64) (*domain.Review, error) {
	var review domain.Review
	err := r.db.First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// FindByContentAndVersion returns all reviews for one version of a content
// item. These are the siblings the state machine aggregates over.
func (r *ReviewRepository) FindByContentAndVersion(contentID uint64, version int) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.Where("content_item_id = ? AND content_version = ?", contentID, version).
		Order("id ASC").
		Find(&reviews).Error
	return reviews, err
}

// FindByContent returns the full review history of a content item
func (r *ReviewRepository) FindByContent(contentID uint64) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.Where("content_item_id = ?", contentID).
		Order("content_version ASC, id ASC").
		Find(&reviews).Error
	return reviews, err
}

// FindPendingByReviewer returns a reviewer's open queue
func (r *ReviewRepository) FindPendingByReviewer(email string) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.Where("reviewer_email = ? AND status = ?", email, domain.ReviewPending).
		Order("created_at ASC").
		Find(&reviews).Error
	return reviews, err
}

// FindDecidedByReviewer returns a reviewer's completed reviews, newest first
func (r *ReviewRepository) FindDecidedByReviewer(email string, limit int) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.Where("reviewer_email = ? AND status <> ?", email, domain.ReviewPending).
		Order("reviewed_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

// Create inserts a new review
func (r *ReviewRepository) Create(review *domain.Review) error {
	return r.db.Create(review).Error
}

// CreateBatch inserts a set of reviews in one statement
func (r *ReviewRepository) CreateBatch(reviews []domain.Review) error {
	if len(reviews) == 0 {
		return nil
	}
	return r.db.Create(&reviews).Error
}

// Update saves a decided review
func (r *ReviewRepository) Update(review *domain.Review) error {
	return r.db.Save(review).Error
}

// CountByStatus returns the number of reviews per status
func (r *ReviewRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&domain.Review{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

// AverageTimeToReview returns the mean hours from assignment to decision
// over reviews decided since the cutoff
func (r *ReviewRepository) AverageTimeToReview(since time.Time) (float64, error) {
	var avg *float64
	err := r.db.Model(&domain.Review{}).
		Select("AVG(time_to_review_hours)").
		Where("reviewed_at IS NOT NULL AND reviewed_at >= ?", since).
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// FindRecentDecided returns the most recent decisions across all reviewers
func (r *ReviewRepository) FindRecentDecided(limit int) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.Where("status <> ?", domain.ReviewPending).
		Order("reviewed_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}
