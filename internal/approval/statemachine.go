package approval

import "github.com/flowhq/approval-backend/internal/domain"

// Outcome is what a review decision does to the content item. The caller
// applies StatusChanged/NewStatus inside the same transaction that recorded
// the decision and dispatches the notification afterwards.
type Outcome struct {
	// StatusChanged reports whether the content item leaves in_review
	StatusChanged bool

	// NewStatus is meaningful only when StatusChanged is true
	NewStatus domain.ContentStatus

	// FinalApproval is true when this decision was the last outstanding
	// approval, i.e. the reviewer who flipped the item to approved
	FinalApproval bool

	// Notify is the notification to send to the submitter, empty when
	// the aggregate is still undecided
	Notify domain.NotificationType
}

// Decide recomputes the content status from the full set of sibling reviews
// for the current version, after one of them has been set to decision.
//
// A single rejection or revision request short-circuits immediately; the
// remaining pending reviews stay pending. Approval flips the item only when
// every sibling has approved.
func Decide(siblings []domain.Review, decision domain.ReviewStatus) Outcome {
	switch decision {
	case domain.ReviewRejected:
		return Outcome{
			StatusChanged: true,
			NewStatus:     domain.StatusRejected,
			Notify:        domain.NotifyContentRejected,
		}
	case domain.ReviewRevisionRequested:
		return Outcome{
			StatusChanged: true,
			NewStatus:     domain.StatusRevisionsNeeded,
			Notify:        domain.NotifyRevisionRequested,
		}
	case domain.ReviewApproved:
		for _, r := range siblings {
			if r.Status != domain.ReviewApproved {
				return Outcome{}
			}
		}
		return Outcome{
			StatusChanged: true,
			NewStatus:     domain.StatusApproved,
			FinalApproval: true,
			Notify:        domain.NotifyContentApproved,
		}
	}
	return Outcome{}
}
