package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/neighborhq/memberdesk/internal/billing/domain"
	"github.com/neighborhq/memberdesk/internal/config"
	"github.com/neighborhq/memberdesk/internal/membership/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Provider  billingdomain.Provider
	TierRules *config.TierRulesHolder
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	provider  billingdomain.Provider
	tierRules *config.TierRulesHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("membership.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		provider:  p.Provider,
		tierRules: p.TierRules,
	}
}

// HandleSubscriptionCreated records a new or renewed subscription. When
// the customer already has a membership row the latest one is renewed in
// place rather than inserting a duplicate.
func (s *Service) HandleSubscriptionCreated(ctx context.Context, req domain.SubscriptionCreatedRequest) error {
	subscriptionID := strings.TrimSpace(req.SubscriptionID)
	if subscriptionID == "" {
		return domain.ErrInvalidSubscription
	}
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return domain.ErrInvalidCustomer
	}

	renewal := periodStartDate(req.PeriodStart)

	existing, err := s.repo.FindLatestByCustomerID(ctx, s.db, customerID)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := s.repo.UpdateRenewal(ctx, s.db, existing.ID, subscriptionID, renewal); err != nil {
			return err
		}
		s.log.Info("membership renewed",
			zap.String("customer_id", customerID),
			zap.String("subscription_id", subscriptionID),
			zap.Int64("membership_id", int64(existing.ID)),
		)
		return nil
	}

	customer, err := s.provider.RetrieveCustomer(ctx, customerID)
	if err != nil {
		s.log.Error("customer lookup failed",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return domain.ErrUpstreamLookup
	}
	if customer == nil || customer.Deleted || strings.TrimSpace(customer.Email) == "" {
		s.log.Error("customer unusable for membership",
			zap.String("customer_id", customerID),
		)
		return domain.ErrUpstreamLookup
	}

	tier, tierID, err := s.resolveTier(ctx, req.PriceID)
	if err != nil {
		return err
	}

	email := domain.NormalizeEmail(customer.Email)
	paymentMethod := "card"
	record := &domain.Membership{
		ID:                   s.genID.Generate(),
		StripeCustomerID:     customerID,
		StripeSubscriptionID: &subscriptionID,
		StripeTierID:         tierID,
		CustomerEmail:        &email,
		Status:               domain.MembershipStatusActive,
		Tier:                 tier,
		LastRenewal:          &renewal,
		IsSubscription:       true,
		PaymentMethod:        &paymentMethod,
		Metadata:             datatypes.JSONMap{},
	}

	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return err
	}

	s.log.Info("membership created",
		zap.String("customer_id", customerID),
		zap.String("subscription_id", subscriptionID),
		zap.String("email", email),
	)
	return nil
}

// HandleSubscriptionDeleted flips the matching membership to Cancelled.
// Rows are never deleted; an unknown subscription id is a no-op.
func (s *Service) HandleSubscriptionDeleted(ctx context.Context, req domain.SubscriptionDeletedRequest) error {
	subscriptionID := strings.TrimSpace(req.SubscriptionID)
	if subscriptionID == "" {
		return domain.ErrInvalidSubscription
	}

	existing, err := s.repo.FindBySubscriptionID(ctx, s.db, subscriptionID)
	if err != nil {
		return err
	}
	if existing == nil {
		s.log.Warn("cancellation for unknown subscription",
			zap.String("subscription_id", subscriptionID),
		)
		return nil
	}

	if err := s.repo.UpdateStatus(ctx, s.db, existing.ID, domain.MembershipStatusCancelled); err != nil {
		return err
	}

	s.log.Info("membership cancelled",
		zap.String("subscription_id", subscriptionID),
		zap.Int64("membership_id", int64(existing.ID)),
	)
	return nil
}

// resolveTier maps the subscription price onto a membership tier. A
// missing price id or an unmappable price yields a NULL tier, not an
// error; a failed upstream lookup is fatal.
func (s *Service) resolveTier(ctx context.Context, priceID string) (*domain.MembershipTier, *string, error) {
	priceID = strings.TrimSpace(priceID)
	if priceID == "" {
		return nil, nil, nil
	}

	price, err := s.provider.RetrievePrice(ctx, priceID)
	if err != nil {
		s.log.Error("price lookup failed",
			zap.String("price_id", priceID),
			zap.Error(err),
		)
		return nil, nil, domain.ErrUpstreamLookup
	}
	if price == nil {
		return nil, nil, nil
	}

	var tierID *string
	if price.ProductID != "" {
		productID := price.ProductID
		tierID = &productID
	}

	explicit := ""
	if price.Metadata != nil {
		explicit = price.Metadata["tier"]
	}
	resolved := s.tierRules.Current().Resolve(explicit, price.Nickname)
	if resolved == "" {
		s.log.Warn("price did not map to a tier",
			zap.String("price_id", priceID),
			zap.String("nickname", price.Nickname),
		)
		return nil, tierID, nil
	}

	tier := domain.MembershipTier(resolved)
	return &tier, tierID, nil
}

func periodStartDate(periodStart time.Time) time.Time {
	value := periodStart.UTC()
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
