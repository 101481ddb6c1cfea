// Package domain defines the shapes produced by the duplicate report
// and the best-membership linking pass.
package domain

import (
	"context"
	"time"

	membershipdomain "github.com/neighborhq/memberdesk/internal/membership/domain"
)

// TierInfo is one membership inside a duplicate group, in report order.
type TierInfo struct {
	Tier           *membershipdomain.MembershipTier `json:"tier"`
	LastRenewal    *time.Time                       `json:"last_renewal"`
	SubscriptionID *string                          `json:"subscription_id"`
	CustomerID     string                           `json:"customer_id"`
}

// DuplicateMembership is one normalized email that owns more than one
// membership row. PersonName is best-effort attribution by email.
type DuplicateMembership struct {
	Email           string     `json:"email"`
	PersonName      string     `json:"person_name"`
	MembershipCount int        `json:"membership_count"`
	Tiers           []TierInfo `json:"tiers"`
}

// LinkReport summarizes one linking pass. Linked counts people who
// gained a membership link, Updated counts people whose link moved to a
// better membership, Skipped counts people left untouched.
type LinkReport struct {
	Linked  int `json:"linked"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Service owns duplicate reporting and the linking pass. Linking is
// convergent: a second pass over unchanged data reports zero linked and
// zero updated.
type Service interface {
	ListDuplicates(ctx context.Context) ([]DuplicateMembership, error)
	LinkBestMemberships(ctx context.Context) (*LinkReport, error)
}
