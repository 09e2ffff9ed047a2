package domain

import "time"

// RoleList stores a list of user roles as a JSON column
type RoleList []UserRole

// ApprovalWorkflow stores the reviewer assignment rule set. The active
// workflow feeds the resolver; compiled-in defaults apply when none exists.
type ApprovalWorkflow struct {
	ID                      uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name                    string    `gorm:"column:name" json:"name"`
	IsActive                bool      `gorm:"column:is_active;index" json:"is_active"`
	BaseRolesJSON           string    `gorm:"column:base_roles;type:json" json:"-"`
	HighSpendThreshold      float64   `gorm:"column:high_spend_threshold" json:"high_spend_threshold"`
	RequireLegalCompetitors bool      `gorm:"column:require_legal_competitors" json:"require_legal_competitors"`
	AdminAlwaysIncluded     bool      `gorm:"column:admin_always_included" json:"admin_always_included"`
	EscalationRolesJSON     string    `gorm:"column:escalation_roles;type:json" json:"-"`
	CreatedAt               time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt               time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name
func (ApprovalWorkflow) TableName() string {
	return "approval_workflows"
}

// WorkflowRequest is the admin create/update payload for a rule set
type WorkflowRequest struct {
	Name                    string              `json:"name" binding:"required"`
	IsActive                bool                `json:"is_active"`
	BaseRoles               map[string][]string `json:"base_roles" binding:"required"`
	HighSpendThreshold      float64             `json:"high_spend_threshold"`
	RequireLegalCompetitors bool                `json:"require_legal_competitors"`
	AdminAlwaysIncluded     bool                `json:"admin_always_included"`
	EscalationRoles         []string            `json:"escalation_roles"`
}

// WorkflowResponse is the API representation of a rule set
type WorkflowResponse struct {
	ID                      uint64              `json:"id"`
	Name                    string              `json:"name"`
	IsActive                bool                `json:"is_active"`
	BaseRoles               map[string][]string `json:"base_roles"`
	HighSpendThreshold      float64             `json:"high_spend_threshold"`
	RequireLegalCompetitors bool                `json:"require_legal_competitors"`
	AdminAlwaysIncluded     bool                `json:"admin_always_included"`
	EscalationRoles         []string            `json:"escalation_roles"`
	CreatedAt               time.Time           `json:"created_at"`
}
