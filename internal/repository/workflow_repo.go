package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/flowhq/approval-backend/internal/domain"
)

// WorkflowRepository handles approval workflow rule sets
type WorkflowRepository struct {
	db *gorm.DB
}

// NewWorkflowRepository creates a new WorkflowRepository
func NewWorkflowRepository(db *gorm.DB) *WorkflowRepository {
	return &WorkflowRepository{db: db}
}

// FindActive returns the active workflow, nil when none is configured
func (r *WorkflowRepository) FindActive() (*domain.ApprovalWorkflow, error) {
	var wf domain.ApprovalWorkflow
	err := r.db.Where("is_active = ?", true).Order("updated_at DESC").First(&wf).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wf, nil
}

// FindByID returns a workflow by ID, nil when not found
func (r *WorkflowRepository) FindByID(id uint64) (*domain.ApprovalWorkflow, error) {
	var wf domain.ApprovalWorkflow
	err := r.db.First(&wf, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wf, nil
}

// FindAll returns every workflow, newest first
func (r *WorkflowRepository) FindAll() ([]domain.ApprovalWorkflow, error) {
	var wfs []domain.ApprovalWorkflow
	err := r.db.Order("updated_at DESC").Find(&wfs).Error
	return wfs, err
}

// Create inserts a new workflow. When it is active, every other workflow
// is deactivated in the same transaction.
func (r *WorkflowRepository) Create(wf *domain.ApprovalWorkflow) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if wf.IsActive {
			if err := tx.Model(&domain.ApprovalWorkflow{}).
				Where("is_active = ?", true).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(wf).Error
	})
}

// Update saves a workflow, deactivating others when it becomes active
func (r *WorkflowRepository) Update(wf *domain.ApprovalWorkflow) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if wf.IsActive {
			if err := tx.Model(&domain.ApprovalWorkflow{}).
				Where("is_active = ? AND id <> ?", true, wf.ID).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(wf).Error
	})
}

// Delete removes a workflow
func (r *WorkflowRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.ApprovalWorkflow{}, id).Error
}
