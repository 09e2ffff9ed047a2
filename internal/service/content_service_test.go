package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
)

func submitReq(contentType string) *domain.SubmitContentRequest {
	return &domain.SubmitContentRequest{
		Title:             "Spring campaign",
		Description:       "Landing page hero",
		ContentType:       contentType,
		FileURLs:          []string{"https://cdn.flow.test/a.png"},
		TargetPublishDate: time.Now().AddDate(0, 0, 14).Format("2006-01-02"),
	}
}

func TestSubmitCreatesReviewRound(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, _, _, _ := newTestServices(t, db)

	result, err := contentSvc.Submit(context.Background(), "creator@flow.test", submitReq("blog_post"))
	assert.NoError(t, err)
	assert.Empty(t, result.Warning)

	item := result.Content
	assert.Equal(t, domain.StatusInReview, item.Status)
	assert.Equal(t, 1, item.Version)
	assert.Equal(t, domain.PriorityLow, item.PriorityLevel)
	// blog_post: brand manager plus always-included admin
	assert.ElementsMatch(t, []string{"admin@flow.test", "brand@flow.test"}, []string(item.CurrentReviewers))

	var reviews []domain.Review
	db.Where("content_item_id = ?", item.ID).Find(&reviews)
	assert.Len(t, reviews, 2)
	for _, r := range reviews {
		assert.Equal(t, domain.ReviewPending, r.Status)
		assert.Equal(t, 1, r.ContentVersion)
	}

	var versions []domain.ContentVersion
	db.Where("content_item_id = ?", item.ID).Find(&versions)
	assert.Len(t, versions, 1)
	assert.Equal(t, 1, versions[0].VersionNumber)

	// each reviewer gets a new_review notification
	var notifications []domain.Notification
	db.Where("content_item_id = ? AND type = ?", item.ID, domain.NotifyNewReview).Find(&notifications)
	assert.Len(t, notifications, 2)
}

func TestSubmitPressReleaseAddsLegal(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, _, _, _ := newTestServices(t, db)

	result, err := contentSvc.Submit(context.Background(), "creator@flow.test", submitReq("press_release"))
	assert.NoError(t, err)
	assert.Contains(t, []string(result.Content.CurrentReviewers), "legal@flow.test")
}

func TestSubmitHighSpendEscalatesToCMO(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, _, _, _ := newTestServices(t, db)

	req := submitReq("ad_creative")
	req.EstimatedSpend = 15000
	result, err := contentSvc.Submit(context.Background(), "creator@flow.test", req)
	assert.NoError(t, err)
	assert.Contains(t, []string(result.Content.CurrentReviewers), "cmo@flow.test")

	// exactly at the threshold: no escalation
	req2 := submitReq("ad_creative")
	req2.EstimatedSpend = 10000
	result2, err := contentSvc.Submit(context.Background(), "creator@flow.test", req2)
	assert.NoError(t, err)
	assert.NotContains(t, []string(result2.Content.CurrentReviewers), "cmo@flow.test")
}

func TestSubmitUrgentDeadlineEscalates(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, _, _, _ := newTestServices(t, db)

	req := submitReq("social_media_post")
	req.TargetPublishDate = time.Now().Format("2006-01-02")
	result, err := contentSvc.Submit(context.Background(), "creator@flow.test", req)
	assert.NoError(t, err)
	assert.Equal(t, domain.PriorityUrgent, result.Content.PriorityLevel)
	assert.Contains(t, []string(result.Content.CurrentReviewers), "cmo@flow.test")
}

func TestSubmitInvalidContentType(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, _, _, _ := newTestServices(t, db)

	_, err := contentSvc.Submit(context.Background(), "creator@flow.test", submitReq("podcast"))
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestSubmitWithNoEligibleReviewersFallsBackToSubmitter(t *testing.T) {
	db := setupTestDB(t)
	// only the creator exists, nobody can review
	if err := db.Create(&domain.User{Email: "creator@flow.test", UserRole: domain.RoleContentCreator}).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	contentSvc, _, _, _ := newTestServices(t, db)

	result, err := contentSvc.Submit(context.Background(), "creator@flow.test", submitReq("blog_post"))
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Warning)
	assert.Equal(t, []string{"creator@flow.test"}, []string(result.Content.CurrentReviewers))

	var warning domain.Notification
	err = db.Where("type = ?", domain.NotifyAssignmentWarning).First(&warning).Error
	assert.NoError(t, err)
	assert.Equal(t, "creator@flow.test", warning.RecipientEmail)
}

func TestSubmitRevisionReopensRound(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, reviewSvc, _, _ := newTestServices(t, db)
	ctx := context.Background()

	result, err := contentSvc.Submit(ctx, "creator@flow.test", submitReq("blog_post"))
	assert.NoError(t, err)
	item := result.Content
	originalRoster := []string(item.CurrentReviewers)

	// brand manager requests revisions
	var review domain.Review
	db.Where("content_item_id = ? AND reviewer_email = ?", item.ID, "brand@flow.test").First(&review)
	_, err = reviewSvc.Decide(ctx, "brand@flow.test", review.ID, &domain.DecisionRequest{
		Decision: "revision_requested",
		Feedback: "tighten the headline",
	})
	assert.NoError(t, err)

	revised, err := contentSvc.SubmitRevision(ctx, "creator@flow.test", item.ID, &domain.SubmitRevisionRequest{
		FileURLs:      []string{"https://cdn.flow.test/b.png"},
		ChangeSummary: "new headline",
	})
	assert.NoError(t, err)

	assert.Equal(t, 2, revised.Content.Version)
	assert.Equal(t, domain.StatusInReview, revised.Content.Status)
	// roster is reused, never re-resolved
	assert.ElementsMatch(t, originalRoster, []string(revised.Content.CurrentReviewers))

	var fresh []domain.Review
	db.Where("content_item_id = ? AND content_version = ?", item.ID, 2).Find(&fresh)
	assert.Len(t, fresh, len(originalRoster))
	for _, r := range fresh {
		assert.Equal(t, domain.ReviewPending, r.Status)
	}

	var snapshot domain.ContentVersion
	err = db.Where("content_item_id = ? AND version_number = ?", item.ID, 2).First(&snapshot).Error
	assert.NoError(t, err)
	assert.Equal(t, "new headline", snapshot.ChangeSummary)
	assert.Contains(t, snapshot.ReviewFeedback, "tighten the headline")
}

func TestSubmitRevisionPreservesReviewerRoles(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, reviewSvc, _, _ := newTestServices(t, db)
	ctx := context.Background()

	result, err := contentSvc.Submit(ctx, "creator@flow.test", submitReq("blog_post"))
	assert.NoError(t, err)
	item := result.Content

	var review domain.Review
	db.Where("content_item_id = ? AND reviewer_email = ?", item.ID, "brand@flow.test").First(&review)
	_, err = reviewSvc.Decide(ctx, "brand@flow.test", review.ID, &domain.DecisionRequest{
		Decision: "revision_requested",
		Feedback: "needs work",
	})
	assert.NoError(t, err)

	// the reviewer is promoted between rounds
	err = db.Model(&domain.User{}).Where("email = ?", "brand@flow.test").
		Update("user_role", domain.RoleCMO).Error
	assert.NoError(t, err)

	_, err = contentSvc.SubmitRevision(ctx, "creator@flow.test", item.ID, &domain.SubmitRevisionRequest{
		FileURLs:      []string{"https://cdn.flow.test/b.png"},
		ChangeSummary: "reworked",
	})
	assert.NoError(t, err)

	// the new round keeps the role the review was originally assigned under
	var fresh domain.Review
	err = db.Where("content_item_id = ? AND content_version = ? AND reviewer_email = ?",
		item.ID, 2, "brand@flow.test").First(&fresh).Error
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleBrandManager, fresh.ReviewerRole)
}

func TestSubmitRevisionRequiresRevisionsNeeded(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, _, _, _ := newTestServices(t, db)
	ctx := context.Background()

	result, err := contentSvc.Submit(ctx, "creator@flow.test", submitReq("blog_post"))
	assert.NoError(t, err)

	_, err = contentSvc.SubmitRevision(ctx, "creator@flow.test", result.Content.ID, &domain.SubmitRevisionRequest{
		FileURLs:      []string{"https://cdn.flow.test/b.png"},
		ChangeSummary: "premature",
	})
	assert.ErrorIs(t, err, common.ErrNotAwaitingRevision)
}

func TestSubmitRevisionOnlyByCreator(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, reviewSvc, _, _ := newTestServices(t, db)
	ctx := context.Background()

	result, err := contentSvc.Submit(ctx, "creator@flow.test", submitReq("blog_post"))
	assert.NoError(t, err)

	var review domain.Review
	db.Where("content_item_id = ? AND reviewer_email = ?", result.Content.ID, "brand@flow.test").First(&review)
	_, err = reviewSvc.Decide(ctx, "brand@flow.test", review.ID, &domain.DecisionRequest{
		Decision: "revision_requested",
		Feedback: "needs work",
	})
	assert.NoError(t, err)

	_, err = contentSvc.SubmitRevision(ctx, "brand@flow.test", result.Content.ID, &domain.SubmitRevisionRequest{
		FileURLs:      []string{"https://cdn.flow.test/b.png"},
		ChangeSummary: "not mine",
	})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestDeleteContentOwnerOrAdmin(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, _, _, _ := newTestServices(t, db)
	ctx := context.Background()

	result, err := contentSvc.Submit(ctx, "creator@flow.test", submitReq("blog_post"))
	assert.NoError(t, err)

	err = contentSvc.Delete(ctx, result.Content.ID, "brand@flow.test", domain.RoleBrandManager)
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = contentSvc.Delete(ctx, result.Content.ID, "admin@flow.test", domain.RoleAdmin)
	assert.NoError(t, err)
}
