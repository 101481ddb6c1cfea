package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/neighborhq/memberdesk/internal/business/domain"
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
		log:   p.Log.Named("business.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateBusinessRequest) (*domain.Business, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	business := &domain.Business{
		ID:               s.genID.Generate(),
		Name:             name,
		Email:            req.Email,
		Phone:            req.Phone,
		Website:          req.Website,
		Address:          req.Address,
		SponsorshipLevel: req.SponsorshipLevel,
	}
	if err := s.repo.Insert(ctx, s.db, business); err != nil {
		return nil, err
	}
	return business, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Business, error) {
	business, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	return business, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Business, error) {
	return s.repo.List(ctx, s.db)
}
