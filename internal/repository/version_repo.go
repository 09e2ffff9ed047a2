package repository

import (
	"gorm.io/gorm"

	"github.com/flowhq/approval-backend/internal/domain"
)

// VersionRepository handles content version snapshots. The table is
// append-only; there is no update or delete.
type VersionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *gorm.DB) *VersionRepository {
	return &VersionRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *VersionRepository) WithTx(tx *gorm.DB) *VersionRepository {
	return &VersionRepository{db: tx}
}

// Create inserts a version snapshot
func (r *VersionRepository) Create(version *domain.ContentVersion) error {
	return r.db.Create(version).Error
}

// FindByContent returns all snapshots for a content item, oldest first
func (r *VersionRepository) FindByContent(contentID uint64) ([]domain.ContentVersion, error) {
	var versions []domain.ContentVersion
	err := r.db.Where("content_item_id = ?", contentID).
		Order("version_number ASC").
		Find(&versions).Error
	return versions, err
}
