// Package migration keeps the database schema in sync with the domain
// models at startup.
package migration

import (
	"gorm.io/gorm"

	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/pkg/logger"
)

// Run auto-migrates every table the workflow needs
func Run(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.ContentItem{},
		&domain.ContentVersion{},
		&domain.Review{},
		&domain.Notification{},
		&domain.ApprovalWorkflow{},
	)
	if err != nil {
		return err
	}
	logger.Info("database schema migrated")
	return nil
}
