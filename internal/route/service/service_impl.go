package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/neighborhq/memberdesk/internal/route/domain"
	pkgdb "github.com/neighborhq/memberdesk/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("route.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRouteRequest) (*domain.Route, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	route := &domain.Route{
		ID:             s.genID.Generate(),
		Name:           name,
		Code:           slug.Make(name),
		Description:    req.Description,
		HouseholdCount: req.HouseholdCount,
	}
	if err := s.repo.Insert(ctx, s.db, route); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateCode
		}
		return nil, err
	}
	return route, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Route, error) {
	route, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, domain.ErrNotFound
	}
	return route, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Route, error) {
	return s.repo.List(ctx, s.db)
}
