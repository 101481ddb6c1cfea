package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/neighborhq/memberdesk/internal/billing"
	billingdomain "github.com/neighborhq/memberdesk/internal/billing/domain"
	"github.com/neighborhq/memberdesk/internal/business"
	businessdomain "github.com/neighborhq/memberdesk/internal/business/domain"
	"github.com/neighborhq/memberdesk/internal/config"
	"github.com/neighborhq/memberdesk/internal/logger"
	"github.com/neighborhq/memberdesk/internal/membership"
	membershipdomain "github.com/neighborhq/memberdesk/internal/membership/domain"
	"github.com/neighborhq/memberdesk/internal/person"
	persondomain "github.com/neighborhq/memberdesk/internal/person/domain"
	"github.com/neighborhq/memberdesk/internal/reconcile"
	reconciledomain "github.com/neighborhq/memberdesk/internal/reconcile/domain"
	"github.com/neighborhq/memberdesk/internal/route"
	routedomain "github.com/neighborhq/memberdesk/internal/route/domain"
	"github.com/neighborhq/memberdesk/pkg/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	membership.Module,
	billing.Module,
	person.Module,
	business.Module,
	route.Module,
	reconcile.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(telemetry.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	genID         *snowflake.Node
	billingSvc    billingdomain.Service
	membershipSvc membershipdomain.Service
	personSvc     persondomain.Service
	businessSvc   businessdomain.Service
	routeSvc      routedomain.Service
	reconcileSvc  reconciledomain.Service
	metrics       *telemetry.Metrics
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	GenID         *snowflake.Node
	BillingSvc    billingdomain.Service
	MembershipSvc membershipdomain.Service
	PersonSvc     persondomain.Service
	BusinessSvc   businessdomain.Service
	RouteSvc      routedomain.Service
	ReconcileSvc  reconciledomain.Service
	Metrics       *telemetry.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		genID:         p.GenID,
		billingSvc:    p.BillingSvc,
		membershipSvc: p.MembershipSvc,
		personSvc:     p.PersonSvc,
		businessSvc:   p.BusinessSvc,
		routeSvc:      p.RouteSvc,
		reconcileSvc:  p.ReconcileSvc,
		metrics:       p.Metrics,
	}

	svc.registerWebhookRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerWebhookRoutes() {
	s.engine.POST("/api/webhooks/stripe", s.HandleStripeWebhook)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/people", s.ListPeople)
	api.POST("/people", s.CreatePerson)
	api.GET("/people/:id", s.GetPerson)

	api.GET("/businesses", s.ListBusinesses)
	api.POST("/businesses", s.CreateBusiness)
	api.GET("/businesses/:id", s.GetBusiness)

	api.GET("/routes", s.ListRoutes)
	api.POST("/routes", s.CreateRoute)
	api.GET("/routes/:id", s.GetRoute)

	api.GET("/memberships/duplicates", s.ListDuplicateMemberships)
	api.POST("/memberships/link", s.LinkMemberships)
}
