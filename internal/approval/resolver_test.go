package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/flowhq/approval-backend/internal/domain"
)

func directory() []domain.User {
	return []domain.User{
		{Email: "creator@flow.test", UserRole: domain.RoleContentCreator},
		{Email: "brand@flow.test", UserRole: domain.RoleBrandManager},
		{Email: "brand2@flow.test", UserRole: domain.RoleBrandManager},
		{Email: "legal@flow.test", UserRole: domain.RoleLegalTeam},
		{Email: "compliance@flow.test", UserRole: domain.RoleCompliance},
		{Email: "cmo@flow.test", UserRole: domain.RoleCMO},
		{Email: "admin@flow.test", UserRole: domain.RoleAdmin},
	}
}

func item(ct domain.ContentType) *domain.ContentItem {
	return &domain.ContentItem{
		ContentType:   ct,
		CreatedBy:     "creator@flow.test",
		PriorityLevel: domain.PriorityLow,
	}
}

func TestResolveBaseRolesPerType(t *testing.T) {
	rs := DefaultRuleSet()
	users := directory()

	tests := []struct {
		contentType domain.ContentType
		want        []string
	}{
		{domain.TypeBlogPost, []string{"admin@flow.test", "brand2@flow.test", "brand@flow.test"}},
		{domain.TypeSocialMediaPost, []string{"admin@flow.test", "brand2@flow.test", "brand@flow.test"}},
		{domain.TypeEmailCampaign, []string{"admin@flow.test", "brand2@flow.test", "brand@flow.test", "compliance@flow.test"}},
		{domain.TypeAdCreative, []string{"admin@flow.test", "brand2@flow.test", "brand@flow.test"}},
		{domain.TypePressRelease, []string{"admin@flow.test", "brand2@flow.test", "brand@flow.test", "legal@flow.test"}},
		{domain.TypeCustom, []string{"admin@flow.test", "brand2@flow.test", "brand@flow.test"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.contentType), func(t *testing.T) {
			got := Resolve(rs, item(tt.contentType), users)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCompetitorMentionAddsLegal(t *testing.T) {
	rs := DefaultRuleSet()
	it := item(domain.TypeBlogPost)
	it.MentionsCompetitors = true

	got := Resolve(rs, it, directory())
	assert.Contains(t, got, "legal@flow.test")
}

func TestResolveSpendThresholdIsStrict(t *testing.T) {
	rs := DefaultRuleSet()

	at := item(domain.TypeBlogPost)
	at.EstimatedSpend = 10000
	assert.NotContains(t, Resolve(rs, at, directory()), "cmo@flow.test",
		"spend exactly at the threshold must not escalate")

	above := item(domain.TypeBlogPost)
	above.EstimatedSpend = 10000.01
	assert.Contains(t, Resolve(rs, above, directory()), "cmo@flow.test")
}

func TestResolveUrgentPriorityAddsCMO(t *testing.T) {
	rs := DefaultRuleSet()
	it := item(domain.TypeSocialMediaPost)
	it.PriorityLevel = domain.PriorityUrgent

	assert.Contains(t, Resolve(rs, it, directory()), "cmo@flow.test")
}

func TestResolvePressReleaseWithCompetitorsDeduplicatesLegal(t *testing.T) {
	rs := DefaultRuleSet()
	it := item(domain.TypePressRelease)
	it.MentionsCompetitors = true

	got := Resolve(rs, it, directory())
	count := 0
	for _, e := range got {
		if e == "legal@flow.test" {
			count++
		}
	}
	assert.Equal(t, 1, count, "legal reviewer appears once even when two rules require it")
}

func TestResolveSubmitterWithMatchingRoleIsAssigned(t *testing.T) {
	rs := DefaultRuleSet()
	it := item(domain.TypeBlogPost)
	it.CreatedBy = "brand@flow.test"

	// every user with a required role is assigned, author included
	got := Resolve(rs, it, directory())
	assert.Contains(t, got, "brand@flow.test")
	assert.Contains(t, got, "brand2@flow.test")
}

func TestResolveNoEligibleUsersReturnsEmpty(t *testing.T) {
	rs := DefaultRuleSet()
	users := []domain.User{
		{Email: "creator@flow.test", UserRole: domain.RoleContentCreator},
		{Email: "other@flow.test", UserRole: domain.RoleContentCreator},
	}

	got := Resolve(rs, item(domain.TypeBlogPost), users)
	assert.Empty(t, got)
}

func TestResolveDeterministicOrdering(t *testing.T) {
	rs := DefaultRuleSet()
	users := directory()

	first := Resolve(rs, item(domain.TypeEmailCampaign), users)

	// same directory in reverse order resolves to the same roster
	reversed := make([]domain.User, len(users))
	for i, u := range users {
		reversed[len(users)-1-i] = u
	}
	second := Resolve(rs, item(domain.TypeEmailCampaign), reversed)

	assert.Equal(t, first, second)
}

func TestPriorityForDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		days float64
		want domain.PriorityLevel
	}{
		{"same day", 0.5, domain.PriorityUrgent},
		{"tomorrow", 1, domain.PriorityUrgent},
		{"three days", 3, domain.PriorityHigh},
		{"one week", 7, domain.PriorityMedium},
		{"two weeks", 14, domain.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := now.Add(time.Duration(tt.days * 24 * float64(time.Hour)))
			assert.Equal(t, tt.want, domain.PriorityForDate(&target, now))
		})
	}

	assert.Equal(t, domain.PriorityMedium, domain.PriorityForDate(nil, now))
}
