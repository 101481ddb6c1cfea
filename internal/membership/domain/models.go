// Package domain contains persistence models for memberships.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// MembershipStatus represents lifecycle states for a membership.
type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "Active"
	MembershipStatusExpired   MembershipStatus = "Expired"
	MembershipStatusDonation  MembershipStatus = "Donation"
	MembershipStatusCancelled MembershipStatus = "Cancelled"
)

// MembershipTier is the enumerated membership level. Business and
// corporate sponsorships live in the businesses table, not here.
type MembershipTier string

const (
	MembershipTierHousehold  MembershipTier = "Household"
	MembershipTierIndividual MembershipTier = "Individual"
	MembershipTierSenior     MembershipTier = "Senior"
	MembershipTierStudent    MembershipTier = "Student"
)

// Membership records a person's paid or donated support tier and its
// billing linkage. Linkage to a person is resolved by email at write
// time; a membership never references a person directly.
type Membership struct {
	ID                   snowflake.ID      `gorm:"primaryKey" json:"id"`
	StripeCustomerID     string            `gorm:"not null;index" json:"stripe_customer_id"`
	StripeSubscriptionID *string           `gorm:"uniqueIndex" json:"stripe_subscription_id,omitempty"`
	StripeTierID         *string           `gorm:"" json:"stripe_tier_id,omitempty"`
	CustomerEmail        *string           `gorm:"index" json:"customer_email,omitempty"`
	Status               MembershipStatus  `gorm:"type:text;not null" json:"status"`
	Tier                 *MembershipTier   `gorm:"type:text" json:"tier,omitempty"`
	LastRenewal          *time.Time        `gorm:"type:date" json:"last_renewal,omitempty"`
	IsSubscription       bool              `gorm:"not null;default:false" json:"is_subscription"`
	PaymentMethod        *string           `gorm:"type:text" json:"payment_method,omitempty"`
	Metadata             datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt            time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Membership) TableName() string { return "memberships" }

// Email returns the trimmed, lower-cased customer email, or "" when absent.
func (m *Membership) NormalizedEmail() string {
	if m == nil || m.CustomerEmail == nil {
		return ""
	}
	return NormalizeEmail(*m.CustomerEmail)
}

// IsActive reports whether the membership status is Active.
func (m *Membership) IsActive() bool {
	return m != nil && m.Status == MembershipStatusActive
}
