package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/flowhq/approval-backend/internal/approval"
	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/repository"
	"github.com/flowhq/approval-backend/pkg/cache"
	"github.com/flowhq/approval-backend/pkg/logger"
)

// WorkflowService manages reviewer assignment rule sets
type WorkflowService struct {
	repo  *repository.WorkflowRepository
	cache cache.Service
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(repo *repository.WorkflowRepository, c cache.Service) *WorkflowService {
	return &WorkflowService{repo: repo, cache: c}
}

// ActiveRuleSet returns the rules the resolver should apply: the active
// stored workflow when one exists, otherwise the compiled-in defaults.
// Falls back to defaults on any load error so submission never blocks on
// a misconfigured workflow row.
func (s *WorkflowService) ActiveRuleSet(ctx context.Context) approval.RuleSet {
	cacheKey := cache.PrefixWorkflow + "active"

	var cached domain.ApprovalWorkflow
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && cached.ID != 0 {
		if rs, err := toRuleSet(&cached); err == nil {
			return rs
		}
	}

	wf, err := s.repo.FindActive()
	if err != nil {
		logger.Warn("loading active workflow failed, using defaults: %v", err)
		return approval.DefaultRuleSet()
	}
	if wf == nil {
		return approval.DefaultRuleSet()
	}

	rs, err := toRuleSet(wf)
	if err != nil {
		logger.Warn("workflow %d has malformed rules, using defaults: %v", wf.ID, err)
		return approval.DefaultRuleSet()
	}

	_ = s.cache.Set(ctx, cacheKey, wf, cache.TTLWorkflow)
	return rs
}

// GetList returns every stored workflow
func (s *WorkflowService) GetList() ([]domain.WorkflowResponse, error) {
	wfs, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]domain.WorkflowResponse, 0, len(wfs))
	for i := range wfs {
		resp, err := toResponse(&wfs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Get returns one workflow by ID
func (s *WorkflowService) Get(id uint64) (*domain.WorkflowResponse, error) {
	wf, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if wf == nil {
		return nil, common.ErrWorkflowNotFound
	}
	return toResponse(wf)
}

// Create validates and stores a new workflow
func (s *WorkflowService) Create(ctx context.Context, req *domain.WorkflowRequest) (*domain.WorkflowResponse, error) {
	wf, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(wf); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return toResponse(wf)
}

// Update validates and saves an existing workflow
func (s *WorkflowService) Update(ctx context.Context, id uint64, req *domain.WorkflowRequest) (*domain.WorkflowResponse, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, common.ErrWorkflowNotFound
	}

	wf, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	wf.ID = existing.ID
	wf.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(wf); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return toResponse(wf)
}

// Delete removes a workflow
func (s *WorkflowService) Delete(ctx context.Context, id uint64) error {
	wf, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if wf == nil {
		return common.ErrWorkflowNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *WorkflowService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateByPrefix(ctx, cache.PrefixWorkflow); err != nil {
		logger.Warn("workflow cache invalidation failed: %v", err)
	}
}

// fromRequest validates role and type names before anything is persisted
func fromRequest(req *domain.WorkflowRequest) (*domain.ApprovalWorkflow, error) {
	baseRoles := make(map[domain.ContentType][]domain.UserRole, len(req.BaseRoles))
	for ct, roles := range req.BaseRoles {
		parsedType, err := domain.ParseContentType(ct)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
		}
		parsed := make([]domain.UserRole, 0, len(roles))
		for _, role := range roles {
			r, err := domain.ParseUserRole(role)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
			}
			parsed = append(parsed, r)
		}
		baseRoles[parsedType] = parsed
	}
	if _, ok := baseRoles[domain.TypeCustom]; !ok {
		return nil, fmt.Errorf("%w: base_roles must include a custom fallback", common.ErrInvalidInput)
	}

	escalation := make([]domain.UserRole, 0, len(req.EscalationRoles))
	for _, role := range req.EscalationRoles {
		r, err := domain.ParseUserRole(role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
		}
		escalation = append(escalation, r)
	}

	baseJSON, err := json.Marshal(baseRoles)
	if err != nil {
		return nil, err
	}
	escJSON, err := json.Marshal(escalation)
	if err != nil {
		return nil, err
	}

	return &domain.ApprovalWorkflow{
		Name:                    req.Name,
		IsActive:                req.IsActive,
		BaseRolesJSON:           string(baseJSON),
		HighSpendThreshold:      req.HighSpendThreshold,
		RequireLegalCompetitors: req.RequireLegalCompetitors,
		AdminAlwaysIncluded:     req.AdminAlwaysIncluded,
		EscalationRolesJSON:     string(escJSON),
	}, nil
}

func toRuleSet(wf *domain.ApprovalWorkflow) (approval.RuleSet, error) {
	var baseRoles map[domain.ContentType][]domain.UserRole
	if err := json.Unmarshal([]byte(wf.BaseRolesJSON), &baseRoles); err != nil {
		return approval.RuleSet{}, err
	}
	var escalation []domain.UserRole
	if err := json.Unmarshal([]byte(wf.EscalationRolesJSON), &escalation); err != nil {
		return approval.RuleSet{}, err
	}
	return approval.RuleSet{
		BaseRoles:                  baseRoles,
		HighSpendThreshold:         wf.HighSpendThreshold,
		RequireLegalForCompetitors: wf.RequireLegalCompetitors,
		AdminAlwaysIncluded:        wf.AdminAlwaysIncluded,
		UrgentEscalationRoles:      escalation,
	}, nil
}

func toResponse(wf *domain.ApprovalWorkflow) (*domain.WorkflowResponse, error) {
	var baseRoles map[string][]string
	if err := json.Unmarshal([]byte(wf.BaseRolesJSON), &baseRoles); err != nil {
		return nil, err
	}
	var escalation []string
	if err := json.Unmarshal([]byte(wf.EscalationRolesJSON), &escalation); err != nil {
		return nil, err
	}
	return &domain.WorkflowResponse{
		ID:                      wf.ID,
		Name:                    wf.Name,
		IsActive:                wf.IsActive,
		BaseRoles:               baseRoles,
		HighSpendThreshold:      wf.HighSpendThreshold,
		RequireLegalCompetitors: wf.RequireLegalCompetitors,
		AdminAlwaysIncluded:     wf.AdminAlwaysIncluded,
		EscalationRoles:         escalation,
		CreatedAt:               wf.CreatedAt,
	}, nil
}
