package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/flowhq/approval-backend/internal/domain"
)

// ContentFilter narrows content listings
type ContentFilter struct {
	Status      string
	ContentType string
	CreatedBy   string
	Priority    string
}

// ContentRepository handles content item data operations
type ContentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ContentRepository) WithTx(tx *gorm.DB) *ContentRepository {
	return &ContentRepository{db: tx}
}

// FindByID returns a content item by ID, nil when not found
func (r *ContentRepository) FindByID(id uint64) (*domain.ContentItem, error) {
	var item domain.ContentItem
	err := r.db.First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDForUpdate returns a content item locked for the duration of the
// surrounding transaction. Serializes concurrent review decisions on the
// same item.
func (r *ContentRepository) FindByIDForUpdate(id uint64) (*domain.ContentItem, error) {
	q := r.db
	// sqlite has no SELECT FOR UPDATE; its single-writer lock already serializes
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var item domain.ContentItem
	err := q.First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetList returns paginated content items matching the filter
func (r *ContentRepository) GetList(filter ContentFilter, offset, limit int) ([]domain.ContentItem, int64, error) {
	var items []domain.ContentItem
	var total int64

	q := r.db.Model(&domain.ContentItem{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ContentType != "" {
		q = q.Where("content_type = ?", filter.ContentType)
	}
	if filter.CreatedBy != "" {
		q = q.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.Priority != "" {
		q = q.Where("priority_level = ?", filter.Priority)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Create inserts a new content item
func (r *ContentRepository) Create(item *domain.ContentItem) error {
	return r.db.Create(item).Error
}

// Update saves changed fields of a content item
func (r *ContentRepository) Update(item *domain.ContentItem) error {
	return r.db.Save(item).Error
}

// UpdateStatus sets the status of a content item
func (r *ContentRepository) UpdateStatus(id uint64, status domain.ContentStatus) error {
	return r.db.Model(&domain.ContentItem{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete removes a content item
func (r *ContentRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.ContentItem{}, id).Error
}

// CountByStatus returns the number of content items per status
func (r *ContentRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&domain.ContentItem{}).
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

// CountByType returns the number of content items per content type
func (r *ContentRepository) CountByType() (map[string]int64, error) {
	type row struct {
		ContentType string
		Count       int64
	}
	var rows []row
	err := r.db.Model(&domain.ContentItem{}).
		Select("content_type, COUNT(*) as count").
		Group("content_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.ContentType] = rw.Count
	}
	return counts, nil
}

// FindInReviewOlderThan returns items still in review whose last update is
// before the cutoff. Used for SLA breach reporting.
func (r *ContentRepository) FindInReviewOlderThan(cutoff time.Time) ([]domain.ContentItem, error) {
	var items []domain.ContentItem
	err := r.db.Where("status = ? AND updated_at < ?", domain.StatusInReview, cutoff).
		Order("updated_at ASC").
		Find(&items).Error
	return items, err
}

// FindRecent returns the most recently updated items
func (r *ContentRepository) FindRecent(limit int) ([]domain.ContentItem, error) {
	var items []domain.ContentItem
	err := r.db.Order("updated_at DESC").Limit(limit).Find(&items).Error
	return items, err
}
