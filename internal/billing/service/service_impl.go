package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	billingdomain "github.com/neighborhq/memberdesk/internal/billing/domain"
	membershipdomain "github.com/neighborhq/memberdesk/internal/membership/domain"
	"github.com/neighborhq/memberdesk/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log           *zap.Logger
	Verifier      billingdomain.Verifier
	Parser        billingdomain.Parser
	MembershipSvc membershipdomain.Service
	Metrics       *telemetry.Metrics `optional:"true"`
}

type Service struct {
	log           *zap.Logger
	verifier      billingdomain.Verifier
	parser        billingdomain.Parser
	membershipSvc membershipdomain.Service
	metrics       *telemetry.Metrics
}

func New(p Params) billingdomain.Service {
	return &Service{
		log:           p.Log.Named("billing.service"),
		verifier:      p.Verifier,
		parser:        p.Parser,
		membershipSvc: p.MembershipSvc,
		metrics:       p.Metrics,
	}
}

// Ingest authenticates the raw payload, decodes the envelope, and
// dispatches by event kind. Unrecognized kinds are acknowledged without
// processing so the provider does not retry them.
func (s *Service) Ingest(ctx context.Context, payload []byte, headers http.Header) error {
	if err := s.verifier.Verify(ctx, payload, headers); err != nil {
		s.metrics.RecordWebhookEvent("unknown", "rejected")
		return err
	}

	event, err := s.parser.Parse(ctx, payload)
	if err != nil {
		if errors.Is(err, billingdomain.ErrEventIgnored) {
			s.log.Info("webhook event ignored")
			s.metrics.RecordWebhookEvent("unknown", "ignored")
			return nil
		}
		s.metrics.RecordWebhookEvent("unknown", "invalid")
		return err
	}

	s.log.Info("webhook event received",
		zap.String("event_id", event.ID),
		zap.String("kind", event.Kind),
	)

	switch event.Kind {
	case billingdomain.EventKindSubscriptionCreated:
		err = s.membershipSvc.HandleSubscriptionCreated(ctx, membershipdomain.SubscriptionCreatedRequest{
			SubscriptionID: event.Subscription.ID,
			CustomerID:     event.Subscription.CustomerID,
			PeriodStart:    time.Unix(event.Subscription.CurrentPeriodStart, 0).UTC(),
			PriceID:        event.Subscription.PriceID,
		})
	case billingdomain.EventKindSubscriptionDeleted:
		err = s.membershipSvc.HandleSubscriptionDeleted(ctx, membershipdomain.SubscriptionDeletedRequest{
			SubscriptionID: event.Subscription.ID,
			CustomerID:     event.Subscription.CustomerID,
		})
	default:
		s.log.Info("webhook event ignored", zap.String("kind", event.Kind))
		s.metrics.RecordWebhookEvent(event.Kind, "ignored")
		return nil
	}

	if err != nil {
		s.metrics.RecordWebhookEvent(event.Kind, "failed")
		return err
	}

	s.metrics.RecordWebhookEvent(event.Kind, "processed")
	return nil
}
