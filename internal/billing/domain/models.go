// Package domain defines the billing-provider boundary: the decoded
// webhook envelope and the upstream lookup contract.
package domain

import (
	"context"
	"errors"
	"net/http"
)

const (
	EventKindSubscriptionCreated = "subscription.created"
	EventKindSubscriptionDeleted = "subscription.deleted"
)

// Event is the decoded webhook envelope. Only the fields the
// reconciliation pipeline consumes are mapped; everything else in the
// payload is ignored.
type Event struct {
	ID           string
	Kind         string
	Subscription Subscription
}

// Subscription is the event object for subscription lifecycle events.
type Subscription struct {
	ID                 string
	CustomerID         string
	CurrentPeriodStart int64
	PriceID            string
}

// Customer is the upstream billing customer record.
type Customer struct {
	ID      string
	Email   string
	Name    string
	Deleted bool
}

// Price is the upstream price record used for tier resolution.
type Price struct {
	ID        string
	ProductID string
	Nickname  string
	Metadata  map[string]string
}

// Verifier authenticates a raw webhook payload against its signature
// header. Verification always runs on the raw body, before any parsing.
type Verifier interface {
	Verify(ctx context.Context, payload []byte, headers http.Header) error
}

// Parser decodes a verified payload into an Event.
type Parser interface {
	Parse(ctx context.Context, payload []byte) (*Event, error)
}

// Provider performs upstream lookups against the billing API.
type Provider interface {
	RetrieveCustomer(ctx context.Context, customerID string) (*Customer, error)
	RetrievePrice(ctx context.Context, priceID string) (*Price, error)
}

// Service ingests a webhook delivery end to end: verification,
// decoding, and dispatch by event kind.
type Service interface {
	Ingest(ctx context.Context, payload []byte, headers http.Header) error
}

var (
	ErrSecretNotConfigured = errors.New("webhook_secret_not_configured")
	ErrMissingSignature    = errors.New("missing_signature")
	ErrInvalidSignature    = errors.New("invalid_signature")
	ErrInvalidPayload      = errors.New("invalid_payload")
	ErrInvalidEvent        = errors.New("invalid_event")
	ErrEventIgnored        = errors.New("event_ignored")
)
