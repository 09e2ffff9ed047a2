package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
)

// submitEmailCampaign opens a three-reviewer round: brand manager,
// compliance, and admin
func submitEmailCampaign(t *testing.T, contentSvc *ContentService) *domain.ContentItem {
	t.Helper()
	result, err := contentSvc.Submit(context.Background(), "creator@flow.test", submitReq("email_campaign"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return result.Content
}

func findReview(t *testing.T, svc *ReviewService, itemID uint64, email string) domain.Review {
	t.Helper()
	queue, err := svc.GetQueue(email)
	if err != nil {
		t.Fatalf("queue lookup failed: %v", err)
	}
	for _, q := range queue {
		if q.Content.ID == itemID {
			return q.Review
		}
	}
	t.Fatalf("no pending review for %s on content %d", email, itemID)
	return domain.Review{}
}

func TestDecidePartialApprovalKeepsInReview(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, reviewSvc, _, _ := newTestServices(t, db)
	ctx := context.Background()

	item := submitEmailCampaign(t, contentSvc)

	r := findReview(t, reviewSvc, item.ID, "brand@flow.test")
	decided, err := reviewSvc.Decide(ctx, "brand@flow.test", r.ID, &domain.DecisionRequest{Decision: "approved"})
	assert.NoError(t, err)
	assert.False(t, decided.IsFinalApproval)

	var current domain.ContentItem
	db.First(&current, item.ID)
	assert.Equal(t, domain.StatusInReview, current.Status)
}

func TestDecideLastApprovalApprovesContent(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, reviewSvc, _, _ := newTestServices(t, db)
	ctx := context.Background()

	item := submitEmailCampaign(t, contentSvc)

	for _, email := range []string{"brand@flow.test", "compliance@flow.test", "admin@flow.test"} {
		r := findReview(t, reviewSvc, item.ID, email)
		_, err := reviewSvc.Decide(ctx, email, r.ID, &domain.DecisionRequest{Decision: "approved"})
		assert.NoError(t, err)
	}

	var current domain.ContentItem
	db.First(&current, item.ID)
	assert.Equal(t, domain.StatusApproved, current.Status)

	// exactly one review carries the final approval flag
	var finals []domain.Review
	db.Where("content_item_id = ? AND is_final_approval = ?", item.ID, true).Find(&finals)
	assert.Len(t, finals, 1)
	assert.Equal(t, "admin@flow.test", finals[0].ReviewerEmail)

	var n domain.Notification
	err := db.Where("content_item_id = ? AND type = ?", item.ID, domain.NotifyContentApproved).First(&n).Error
	assert.NoError(t, err)
	assert.Equal(t, "creator@flow.test", n.RecipientEmail)
}

func TestDecideRejectionShortCircuits(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, reviewSvc, _, _ := newTestServices(t, db)
	ctx := context.Background()

	item := submitEmailCampaign(t, contentSvc)

	r := findReview(t, reviewSvc, item.ID, "compliance@flow.test")
	_, err := reviewSvc.Decide(ctx, "compliance@flow.test", r.ID, &domain.DecisionRequest{
		Decision: "rejected",
		Feedback: "claims are not substantiated",
	})
	assert.NoError(t, err)

	var current domain.ContentItem
	db.First(&current, item.ID)
	assert.Equal(t, domain.StatusRejected, current.Status)

	// sibling reviews stay pending, untouched by the short circuit
	var pending []domain.Review
	db.Where("content_item_id = ? AND status = ?", item.ID, domain.ReviewPending).Find(&pending)
	assert.Len(t, pending, 2)
}

func TestDecideRevisionAfterApprovalShortCircuits(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, reviewSvc, _, _ := newTestServices(t, db)
	ctx := context.Background()

	item := submitEmailCampaign(t, contentSvc)

	r := findReview(t, reviewSvc, item.ID, "brand@flow.test")
	_, err := reviewSvc.Decide(ctx, "brand@flow.test", r.ID, &domain.DecisionRequest{Decision: "approved"})
	assert.NoError(t, err)

	r = findReview(t, reviewSvc, item.ID, "compliance@flow.test")
	_, err = reviewSvc.Decide(ctx, "compliance@flow.test", r.ID, &domain.DecisionRequest{
		Decision: "revision_requested",
		Feedback: "update the disclaimer",
	})
	assert.NoError(t, err)

	var current domain.ContentItem
	db.First(&current, item.ID)
	assert.Equal(t, domain.StatusRevisionsNeeded, current.Status)
}

func TestDecideTwiceFails(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, reviewSvc, _, _ := newTestServices(t, db)
	ctx := context.Background()

	item := submitEmailCampaign(t, contentSvc)

	r := findReview(t, reviewSvc, item.ID, "brand@flow.test")
	_, err := reviewSvc.Decide(ctx, "brand@flow.test", r.ID, &domain.DecisionRequest{Decision: "approved"})
	assert.NoError(t, err)

	_, err = reviewSvc.Decide(ctx, "brand@flow.test", r.ID, &domain.DecisionRequest{Decision: "rejected", Feedback: "changed my mind"})
	assert.ErrorIs(t, err, common.ErrReviewAlreadyDecided)
}

func TestDecideOnlyByAssignedReviewer(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, reviewSvc, _, _ := newTestServices(t, db)
	ctx := context.Background()

	item := submitEmailCampaign(t, contentSvc)

	r := findReview(t, reviewSvc, item.ID, "brand@flow.test")
	_, err := reviewSvc.Decide(ctx, "legal@flow.test", r.ID, &domain.DecisionRequest{Decision: "approved"})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestDecideRequiresFeedbackOnRejection(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, reviewSvc, _, _ := newTestServices(t, db)
	ctx := context.Background()

	item := submitEmailCampaign(t, contentSvc)

	r := findReview(t, reviewSvc, item.ID, "brand@flow.test")
	_, err := reviewSvc.Decide(ctx, "brand@flow.test", r.ID, &domain.DecisionRequest{Decision: "rejected"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestDecideStaleVersionFails(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, reviewSvc, _, _ := newTestServices(t, db)
	ctx := context.Background()

	item := submitEmailCampaign(t, contentSvc)

	// revision round supersedes the first one
	r := findReview(t, reviewSvc, item.ID, "brand@flow.test")
	_, err := reviewSvc.Decide(ctx, "brand@flow.test", r.ID, &domain.DecisionRequest{
		Decision: "revision_requested",
		Feedback: "rework the copy",
	})
	assert.NoError(t, err)

	stale := findReview(t, reviewSvc, item.ID, "compliance@flow.test")
	_, err = contentSvc.SubmitRevision(ctx, "creator@flow.test", item.ID, &domain.SubmitRevisionRequest{
		FileURLs:      []string{"https://cdn.flow.test/b.png"},
		ChangeSummary: "reworked",
	})
	assert.NoError(t, err)

	_, err = reviewSvc.Decide(ctx, "compliance@flow.test", stale.ID, &domain.DecisionRequest{Decision: "approved"})
	assert.ErrorIs(t, err, common.ErrStaleReviewVersion)
}

func TestQueueSkipsSupersededRounds(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	contentSvc, reviewSvc, _, _ := newTestServices(t, db)
	ctx := context.Background()

	item := submitEmailCampaign(t, contentSvc)

	r := findReview(t, reviewSvc, item.ID, "brand@flow.test")
	_, err := reviewSvc.Decide(ctx, "brand@flow.test", r.ID, &domain.DecisionRequest{
		Decision: "revision_requested",
		Feedback: "rework",
	})
	assert.NoError(t, err)

	_, err = contentSvc.SubmitRevision(ctx, "creator@flow.test", item.ID, &domain.SubmitRevisionRequest{
		FileURLs:      []string{"https://cdn.flow.test/b.png"},
		ChangeSummary: "reworked",
	})
	assert.NoError(t, err)

	// compliance holds a pending v1 review and a fresh v2 review; only
	// the current round appears in the queue
	queue, err := reviewSvc.GetQueue("compliance@flow.test")
	assert.NoError(t, err)
	count := 0
	for _, q := range queue {
		if q.Content.ID == item.ID {
			count++
			assert.Equal(t, 2, q.Review.ContentVersion)
		}
	}
	assert.Equal(t, 1, count)
}
