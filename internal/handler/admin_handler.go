package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/service"
)

// AdminHandler handles workflow and user administration
type AdminHandler struct {
	workflows *service.WorkflowService
	users     *service.UserService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(workflows *service.WorkflowService, users *service.UserService) *AdminHandler {
	return &AdminHandler{workflows: workflows, users: users}
}

// GetWorkflows handles GET /api/v1/admin/workflows
func (h *AdminHandler) GetWorkflows(c *gin.Context) {
	wfs, err := h.workflows.GetList()
	if err != nil {
		respondError(c, err, "Workflow listing failed")
		return
	}

	common.SuccessResponse(c, wfs, nil)
}

// GetWorkflow handles GET /api/v1/admin/workflows/:id
func (h *AdminHandler) GetWorkflow(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid workflow ID", nil)
		return
	}

	wf, err := h.workflows.Get(id)
	if err != nil {
		respondError(c, err, "Workflow lookup failed")
		return
	}

	common.SuccessResponse(c, wf, nil)
}

// CreateWorkflow handles POST /api/v1/admin/workflows
func (h *AdminHandler) CreateWorkflow(c *gin.Context) {
	var req domain.WorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	wf, err := h.workflows.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Workflow creation failed")
		return
	}

	common.CreatedResponse(c, wf, nil)
}

// UpdateWorkflow handles PUT /api/v1/admin/workflows/:id
func (h *AdminHandler) UpdateWorkflow(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid workflow ID", nil)
		return
	}

	var req domain.WorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	wf, err := h.workflows.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Workflow update failed")
		return
	}

	common.SuccessResponse(c, wf, nil)
}

// DeleteWorkflow handles DELETE /api/v1/admin/workflows/:id
func (h *AdminHandler) DeleteWorkflow(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid workflow ID", nil)
		return
	}

	if err := h.workflows.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Workflow deletion failed")
		return
	}

	common.SuccessResponse(c, gin.H{"success": true}, nil)
}

// GetUsers handles GET /api/v1/admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.users.GetList()
	if err != nil {
		respondError(c, err, "User listing failed")
		return
	}

	common.SuccessResponse(c, users, &common.Meta{Total: int64(len(users))})
}

// CreateUser handles POST /api/v1/admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.users.Create(&req)
	if err != nil {
		respondError(c, err, "User creation failed")
		return
	}

	common.CreatedResponse(c, user, nil)
}

// UpdateUserRole handles PUT /api/v1/admin/users/:id/role
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	var req domain.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.users.UpdateRole(id, &req)
	if err != nil {
		respondError(c, err, "Role update failed")
		return
	}

	common.SuccessResponse(c, user, nil)
}
