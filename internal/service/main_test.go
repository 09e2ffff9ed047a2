package service

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/repository"
	"github.com/flowhq/approval-backend/pkg/cache"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = db.AutoMigrate(
		&domain.User{},
		&domain.ContentItem{},
		&domain.ContentVersion{},
		&domain.Review{},
		&domain.Notification{},
		&domain.ApprovalWorkflow{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedUsers(t *testing.T, db *gorm.DB) {
	t.Helper()
	users := []domain.User{
		{Email: "creator@flow.test", FullName: "Creator", UserRole: domain.RoleContentCreator},
		{Email: "brand@flow.test", FullName: "Brand", UserRole: domain.RoleBrandManager},
		{Email: "legal@flow.test", FullName: "Legal", UserRole: domain.RoleLegalTeam},
		{Email: "compliance@flow.test", FullName: "Compliance", UserRole: domain.RoleCompliance},
		{Email: "cmo@flow.test", FullName: "CMO", UserRole: domain.RoleCMO},
		{Email: "admin@flow.test", FullName: "Admin", UserRole: domain.RoleAdmin},
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("failed to seed users: %v", err)
	}
}

// newTestServices wires the full service graph against one sqlite database.
// Redis is absent so the cache degrades to a no-op.
func newTestServices(t *testing.T, db *gorm.DB) (*ContentService, *ReviewService, *NotificationService, *WorkflowService) {
	t.Helper()
	c := cache.NewService(nil)

	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	workflowRepo := repository.NewWorkflowRepository(db)

	notificationSvc := NewNotificationService(notificationRepo, nil)
	workflowSvc := NewWorkflowService(workflowRepo, c)
	contentSvc := NewContentService(db, contentRepo, reviewRepo, versionRepo, userRepo, workflowSvc, notificationSvc, c)
	reviewSvc := NewReviewService(db, reviewRepo, contentRepo, notificationSvc, c)

	return contentSvc, reviewSvc, notificationSvc, workflowSvc
}
