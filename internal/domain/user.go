package domain

import (
	"fmt"
	"time"
)

// UserRole is the closed set of roles the assignment rules dispatch on.
// Invalid values are rejected at parse time instead of silently falling
// through to default rules.
type UserRole string

// User roles
const (
	RoleContentCreator UserRole = "content_creator"
	RoleBrandManager   UserRole = "brand_manager"
	RoleLegalTeam      UserRole = "legal_team"
	RoleCompliance     UserRole = "compliance"
	RoleCMO            UserRole = "cmo"
	RoleAdmin          UserRole = "admin"
)

// ParseUserRole validates a role string
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleContentCreator, RoleBrandManager, RoleLegalTeam, RoleCompliance, RoleCMO, RoleAdmin:
		return UserRole(s), nil
	}
	return "", fmt.Errorf("invalid user role: %q", s)
}

// DisplayName returns a human-readable role name
func (r UserRole) DisplayName() string {
	switch r {
	case RoleContentCreator:
		return "Content Creator"
	case RoleBrandManager:
		return "Brand Manager"
	case RoleLegalTeam:
		return "Legal Team"
	case RoleCompliance:
		return "Compliance"
	case RoleCMO:
		return "CMO"
	case RoleAdmin:
		return "Admin"
	}
	return string(r)
}

// ReviewerRoles returns the roles eligible for review assignment
func ReviewerRoles() []UserRole {
	return []UserRole{RoleBrandManager, RoleLegalTeam, RoleCompliance, RoleCMO, RoleAdmin}
}

// User represents an account in the approval system
type User struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email      string    `gorm:"column:email;uniqueIndex;size:191" json:"email"`
	Password   string    `gorm:"column:password" json:"-"`
	FullName   string    `gorm:"column:full_name" json:"full_name"`
	UserRole   UserRole  `gorm:"column:user_role;index;size:32" json:"user_role"`
	Department string    `gorm:"column:department" json:"department,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.UserRole == RoleAdmin
}

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FullName   string `json:"full_name" binding:"required"`
	UserRole   string `json:"user_role"`
	Department string `json:"department"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest provisions an account with an explicit role (admin only)
type CreateUserRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FullName   string `json:"full_name" binding:"required"`
	UserRole   string `json:"user_role" binding:"required"`
	Department string `json:"department"`
}

// UpdateRoleRequest changes a user's role (admin only)
type UpdateRoleRequest struct {
	UserRole string `json:"user_role" binding:"required"`
}
