package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// SubscriptionCreatedRequest carries the fields consumed from a
// subscription.created billing event.
type SubscriptionCreatedRequest struct {
	SubscriptionID string
	CustomerID     string
	PeriodStart    time.Time
	PriceID        string
}

// SubscriptionDeletedRequest carries the fields consumed from a
// subscription.deleted billing event.
type SubscriptionDeletedRequest struct {
	SubscriptionID string
	CustomerID     string
}

// Service reconciles billing events into the memberships table. Both
// operations are idempotent: the billing provider delivers events
// at-least-once and out of order.
type Service interface {
	HandleSubscriptionCreated(context.Context, SubscriptionCreatedRequest) error
	HandleSubscriptionDeleted(context.Context, SubscriptionDeletedRequest) error
}

var (
	ErrInvalidSubscription = errors.New("invalid_subscription")
	ErrInvalidCustomer     = errors.New("invalid_customer")
	ErrUpstreamLookup      = errors.New("upstream_lookup_failed")
	ErrNotFound            = errors.New("not_found")
)

// NormalizeEmail lower-cases and trims an email for grouping and
// person matching. Emails are free text in the billing provider, so
// this is the only join key discipline available.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
