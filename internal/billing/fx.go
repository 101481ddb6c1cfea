package billing

import (
	billingdomain "github.com/neighborhq/memberdesk/internal/billing/domain"
	billingservice "github.com/neighborhq/memberdesk/internal/billing/service"
	"github.com/neighborhq/memberdesk/internal/billing/stripe"
	"github.com/neighborhq/memberdesk/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(func(cfg config.Config) *stripe.Adapter {
		return stripe.NewAdapter(cfg.StripeWebhookSecret)
	}),
	fx.Provide(func(cfg config.Config) *stripe.Client {
		return stripe.NewClient(cfg.StripeSecretKey, cfg.StripeAPIBase)
	}),
	fx.Provide(func(a *stripe.Adapter) billingdomain.Verifier { return a }),
	fx.Provide(func(a *stripe.Adapter) billingdomain.Parser { return a }),
	fx.Provide(func(c *stripe.Client) billingdomain.Provider { return c }),
	fx.Provide(billingservice.New),
)
