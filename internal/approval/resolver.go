package approval

import (
	"sort"

	"github.com/flowhq/approval-backend/internal/domain"
)

// Resolve computes the reviewer roster for a content item. Given the same
// rules, item, and user directory it always returns the same roster: a
// deduplicated, sorted list of every user whose role the rules require,
// submitter included when their role matches.
//
// An empty result means no eligible reviewer exists; the caller decides
// the fallback.
func Resolve(rs RuleSet, item *domain.ContentItem, users []domain.User) []string {
	roles := make(map[domain.UserRole]bool)
	for _, r := range rs.baseRolesFor(item.ContentType) {
		roles[r] = true
	}
	if rs.RequireLegalForCompetitors && item.MentionsCompetitors {
		roles[domain.RoleLegalTeam] = true
	}
	if item.EstimatedSpend > rs.HighSpendThreshold {
		roles[domain.RoleCMO] = true
	}
	if item.PriorityLevel == domain.PriorityUrgent {
		for _, r := range rs.UrgentEscalationRoles {
			roles[r] = true
		}
	}
	if rs.AdminAlwaysIncluded {
		roles[domain.RoleAdmin] = true
	}

	seen := make(map[string]bool)
	var emails []string
	for _, u := range users {
		if !roles[u.UserRole] {
			continue
		}
		if seen[u.Email] {
			continue
		}
		seen[u.Email] = true
		emails = append(emails, u.Email)
	}
	sort.Strings(emails)
	return emails
}
