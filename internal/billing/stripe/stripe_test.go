package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	billingdomain "github.com/neighborhq/memberdesk/internal/billing/domain"
)

func buildSignatureHeader(secret string, payload []byte, timestamp int64) string {
	signed := fmt.Sprintf("%d.%s", timestamp, string(payload))
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(signed))
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"id":"evt_123","type":"subscription.created","data":{"object":{}}}`)
	timestamp := time.Now().Unix()

	reqHeader := http.Header{}
	reqHeader.Set("Stripe-Signature", buildSignatureHeader(secret, payload, timestamp))

	adapter := NewAdapter(secret)
	if err := adapter.Verify(context.Background(), payload, reqHeader); err != nil {
		t.Fatalf("expected valid signature, got error: %v", err)
	}

	reqHeader.Set("Stripe-Signature", buildSignatureHeader("wrong", payload, timestamp))
	if err := adapter.Verify(context.Background(), payload, reqHeader); !errors.Is(err, billingdomain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyMissingHeader(t *testing.T) {
	adapter := NewAdapter("whsec_test")
	err := adapter.Verify(context.Background(), []byte("{}"), http.Header{})
	if !errors.Is(err, billingdomain.ErrMissingSignature) {
		t.Fatalf("expected ErrMissingSignature, got %v", err)
	}
}

func TestVerifyWithoutSecret(t *testing.T) {
	adapter := NewAdapter("")
	reqHeader := http.Header{}
	reqHeader.Set("Stripe-Signature", "t=1,v1=deadbeef")
	err := adapter.Verify(context.Background(), []byte("{}"), reqHeader)
	if !errors.Is(err, billingdomain.ErrSecretNotConfigured) {
		t.Fatalf("expected ErrSecretNotConfigured, got %v", err)
	}
}

func TestVerifyMalformedHeader(t *testing.T) {
	adapter := NewAdapter("whsec_test")
	reqHeader := http.Header{}
	reqHeader.Set("Stripe-Signature", "not a signature")
	err := adapter.Verify(context.Background(), []byte("{}"), reqHeader)
	if !errors.Is(err, billingdomain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestParseSubscriptionCreated(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "subscription.created",
		"data": {
			"object": {
				"id": "sub_1",
				"customer": "cus_1",
				"current_period_start": 1767225600,
				"items": {"data": [{"price": {"id": "price_1"}}]}
			}
		}
	}`)

	adapter := NewAdapter("whsec_test")
	event, err := adapter.Parse(context.Background(), payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if event.Kind != billingdomain.EventKindSubscriptionCreated {
		t.Fatalf("wrong kind: %s", event.Kind)
	}
	if event.Subscription.ID != "sub_1" ||
		event.Subscription.CustomerID != "cus_1" ||
		event.Subscription.PriceID != "price_1" {
		t.Fatalf("unexpected subscription: %+v", event.Subscription)
	}
	if event.Subscription.CurrentPeriodStart != 1767225600 {
		t.Fatalf("unexpected period start: %d", event.Subscription.CurrentPeriodStart)
	}
}

func TestParseSubscriptionDeletedWithoutItems(t *testing.T) {
	payload := []byte(`{
		"id": "evt_2",
		"type": "subscription.deleted",
		"data": {"object": {"id": "sub_2", "customer": "cus_2"}}
	}`)

	adapter := NewAdapter("whsec_test")
	event, err := adapter.Parse(context.Background(), payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if event.Kind != billingdomain.EventKindSubscriptionDeleted {
		t.Fatalf("wrong kind: %s", event.Kind)
	}
	if event.Subscription.PriceID != "" {
		t.Fatalf("expected empty price id, got %q", event.Subscription.PriceID)
	}
}

func TestParseIgnoresOtherKinds(t *testing.T) {
	payload := []byte(`{"id":"evt_3","type":"invoice.paid","data":{"object":{"id":"in_1"}}}`)
	adapter := NewAdapter("whsec_test")
	if _, err := adapter.Parse(context.Background(), payload); !errors.Is(err, billingdomain.ErrEventIgnored) {
		t.Fatalf("expected ErrEventIgnored, got %v", err)
	}
}

func TestParseRejectsMalformedPayload(t *testing.T) {
	adapter := NewAdapter("whsec_test")
	if _, err := adapter.Parse(context.Background(), []byte("{not json")); !errors.Is(err, billingdomain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
	if _, err := adapter.Parse(context.Background(), []byte(`{"id":"","type":"subscription.created"}`)); !errors.Is(err, billingdomain.ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}
