package service

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
	"github.com/neighborhq/memberdesk/internal/billing/stripe"
	membershipdomain "github.com/neighborhq/memberdesk/internal/membership/domain"
	"go.uber.org/zap"
)

type fakeMembershipService struct {
	created []membershipdomain.SubscriptionCreatedRequest
	deleted []membershipdomain.SubscriptionDeletedRequest
	err     error
}

func (f *fakeMembershipService) HandleSubscriptionCreated(ctx context.Context, req membershipdomain.SubscriptionCreatedRequest) error {
	f.created = append(f.created, req)
	return f.err
}

func (f *fakeMembershipService) HandleSubscriptionDeleted(ctx context.Context, req membershipdomain.SubscriptionDeletedRequest) error {
	f.deleted = append(f.deleted, req)
	return f.err
}

const testSecret = "whsec_test"

func signedHeaders(payload []byte) http.Header {
	timestamp := time.Now().Unix()
	signed := fmt.Sprintf("%d.%s", timestamp, string(payload))
	mac := hmac.New(sha256.New, []byte(testSecret))
	_, _ = mac.Write([]byte(signed))

	headers := http.Header{}
	headers.Set("Stripe-Signature", fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil))))
	return headers
}

func newTestService(membershipSvc membershipdomain.Service) billingdomain.Service {
	adapter := stripe.NewAdapter(testSecret)
	return New(Params{
		Log:           zap.NewNop(),
		Verifier:      adapter,
		Parser:        adapter,
		MembershipSvc: membershipSvc,
	})
}

func TestIngestDispatchesSubscriptionCreated(t *testing.T) {
	fake := &fakeMembershipService{}
	svc := newTestService(fake)

	payload := []byte(`{
		"id": "evt_1",
		"type": "subscription.created",
		"data": {"object": {
			"id": "sub_1",
			"customer": "cus_1",
			"current_period_start": 1767225600,
			"items": {"data": [{"price": {"id": "price_1"}}]}
		}}
	}`)

	if err := svc.Ingest(context.Background(), payload, signedHeaders(payload)); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if len(fake.created) != 1 {
		t.Fatalf("expected one dispatch, got %d", len(fake.created))
	}

	req := fake.created[0]
	if req.SubscriptionID != "sub_1" || req.CustomerID != "cus_1" || req.PriceID != "price_1" {
		t.Fatalf("unexpected request: %+v", req)
	}
	want := time.Unix(1767225600, 0).UTC()
	if !req.PeriodStart.Equal(want) {
		t.Fatalf("period start %v, want %v", req.PeriodStart, want)
	}
}

func TestIngestDispatchesSubscriptionDeleted(t *testing.T) {
	fake := &fakeMembershipService{}
	svc := newTestService(fake)

	payload := []byte(`{
		"id": "evt_2",
		"type": "subscription.deleted",
		"data": {"object": {"id": "sub_9", "customer": "cus_9"}}
	}`)

	if err := svc.Ingest(context.Background(), payload, signedHeaders(payload)); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if len(fake.deleted) != 1 || fake.deleted[0].SubscriptionID != "sub_9" {
		t.Fatalf("unexpected dispatches: %+v", fake.deleted)
	}
}

func TestIngestAcknowledgesUnrecognizedKinds(t *testing.T) {
	fake := &fakeMembershipService{}
	svc := newTestService(fake)

	payload := []byte(`{"id":"evt_3","type":"invoice.paid","data":{"object":{"id":"in_1"}}}`)
	if err := svc.Ingest(context.Background(), payload, signedHeaders(payload)); err != nil {
		t.Fatalf("unrecognized kinds must be acknowledged, got %v", err)
	}
	if len(fake.created)+len(fake.deleted) != 0 {
		t.Fatal("unrecognized kinds must not dispatch")
	}
}

func TestIngestRejectsBadSignatureBeforeParsing(t *testing.T) {
	fake := &fakeMembershipService{}
	svc := newTestService(fake)

	payload := []byte(`{"id":"evt_4","type":"subscription.created","data":{"object":{"id":"sub_1","customer":"cus_1"}}}`)
	headers := http.Header{}
	headers.Set("Stripe-Signature", "t=1,v1=deadbeef")

	err := svc.Ingest(context.Background(), payload, headers)
	if !errors.Is(err, billingdomain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if len(fake.created) != 0 {
		t.Fatal("must not dispatch on bad signature")
	}
}

func TestIngestPropagatesProcessingErrors(t *testing.T) {
	fake := &fakeMembershipService{err: membershipdomain.ErrUpstreamLookup}
	svc := newTestService(fake)

	payload := []byte(`{
		"id": "evt_5",
		"type": "subscription.created",
		"data": {"object": {"id": "sub_1", "customer": "cus_1"}}
	}`)

	err := svc.Ingest(context.Background(), payload, signedHeaders(payload))
	if !errors.Is(err, membershipdomain.ErrUpstreamLookup) {
		t.Fatalf("expected ErrUpstreamLookup, got %v", err)
	}
}
