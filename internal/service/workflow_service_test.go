package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
)

func workflowReq(name string, active bool) *domain.WorkflowRequest {
	return &domain.WorkflowRequest{
		Name:     name,
		IsActive: active,
		BaseRoles: map[string][]string{
			"blog_post": {"brand_manager", "legal_team"},
			"custom":    {"brand_manager"},
		},
		HighSpendThreshold:      5000,
		RequireLegalCompetitors: true,
		AdminAlwaysIncluded:     false,
		EscalationRoles:         []string{"cmo"},
	}
}

func TestActiveRuleSetDefaultsWithoutWorkflow(t *testing.T) {
	db := setupTestDB(t)
	_, _, _, workflowSvc := newTestServices(t, db)

	rs := workflowSvc.ActiveRuleSet(context.Background())
	assert.Equal(t, float64(10000), rs.HighSpendThreshold)
	assert.True(t, rs.AdminAlwaysIncluded)
}

func TestActiveRuleSetUsesStoredWorkflow(t *testing.T) {
	db := setupTestDB(t)
	_, _, _, workflowSvc := newTestServices(t, db)
	ctx := context.Background()

	_, err := workflowSvc.Create(ctx, workflowReq("strict", true))
	assert.NoError(t, err)

	rs := workflowSvc.ActiveRuleSet(ctx)
	assert.Equal(t, float64(5000), rs.HighSpendThreshold)
	assert.False(t, rs.AdminAlwaysIncluded)
	assert.Equal(t, []domain.UserRole{domain.RoleBrandManager, domain.RoleLegalTeam}, rs.BaseRoles[domain.TypeBlogPost])
}

func TestCreateActiveWorkflowDeactivatesOthers(t *testing.T) {
	db := setupTestDB(t)
	_, _, _, workflowSvc := newTestServices(t, db)
	ctx := context.Background()

	first, err := workflowSvc.Create(ctx, workflowReq("first", true))
	assert.NoError(t, err)
	_, err = workflowSvc.Create(ctx, workflowReq("second", true))
	assert.NoError(t, err)

	reloaded, err := workflowSvc.Get(first.ID)
	assert.NoError(t, err)
	assert.False(t, reloaded.IsActive)
}

func TestWorkflowRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	_, _, _, workflowSvc := newTestServices(t, db)

	req := workflowReq("bad", false)
	req.BaseRoles["blog_post"] = []string{"wizard"}
	_, err := workflowSvc.Create(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestWorkflowRequiresCustomFallback(t *testing.T) {
	db := setupTestDB(t)
	_, _, _, workflowSvc := newTestServices(t, db)

	req := workflowReq("no-fallback", false)
	delete(req.BaseRoles, "custom")
	_, err := workflowSvc.Create(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
