// Package approval holds the reviewer assignment rules and the approval
// state machine. It has no HTTP, database, or clock dependencies; callers
// feed it snapshots and execute the side effects it prescribes.
package approval

import "github.com/flowhq/approval-backend/internal/domain"

// RuleSet configures reviewer assignment for content submissions
type RuleSet struct {
	// BaseRoles maps each content type to the roles that must review it.
	// Unmapped types fall back to the custom entry.
	BaseRoles map[domain.ContentType][]domain.UserRole

	// HighSpendThreshold adds CMO reviewers when estimated spend STRICTLY
	// exceeds this value. Spend exactly at the threshold does not trigger.
	HighSpendThreshold float64

	// RequireLegalForCompetitors adds all legal_team users when the
	// content mentions competitors
	RequireLegalForCompetitors bool

	// AdminAlwaysIncluded adds all admin users to every review
	AdminAlwaysIncluded bool

	// UrgentEscalationRoles are added when priority is urgent
	UrgentEscalationRoles []domain.UserRole
}

// DefaultRuleSet returns the built-in assignment rules
func DefaultRuleSet() RuleSet {
	return RuleSet{
		BaseRoles: map[domain.ContentType][]domain.UserRole{
			domain.TypeBlogPost:        {domain.RoleBrandManager},
			domain.TypeSocialMediaPost: {domain.RoleBrandManager},
			domain.TypeEmailCampaign:   {domain.RoleBrandManager, domain.RoleCompliance},
			domain.TypeAdCreative:      {domain.RoleBrandManager},
			domain.TypePressRelease:    {domain.RoleBrandManager, domain.RoleLegalTeam},
			domain.TypeCustom:          {domain.RoleBrandManager},
		},
		HighSpendThreshold:         10000,
		RequireLegalForCompetitors: true,
		AdminAlwaysIncluded:        true,
		UrgentEscalationRoles:      []domain.UserRole{domain.RoleCMO},
	}
}

// baseRolesFor returns the required roles for a content type, falling back
// to the custom rule set for unmapped types
func (rs RuleSet) baseRolesFor(ct domain.ContentType) []domain.UserRole {
	if roles, ok := rs.BaseRoles[ct]; ok {
		return roles
	}
	return rs.BaseRoles[domain.TypeCustom]
}
