package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/neighborhq/memberdesk/internal/person/domain"
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
		log:   p.Log.Named("person.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePersonRequest) (*domain.Person, error) {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	person := &domain.Person{
		ID:          s.genID.Generate(),
		FullName:    name,
		Email:       trimmed(req.Email),
		Phone:       trimmed(req.Phone),
		Address:     trimmed(req.Address),
		HouseholdID: req.HouseholdID,
	}
	if err := s.repo.Insert(ctx, s.db, person); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Person, error) {
	person, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, domain.ErrNotFound
	}
	return person, nil
}

func (s *Service) List(ctx context.Context) ([]domain.PersonView, error) {
	return s.repo.List(ctx, s.db)
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	out := strings.TrimSpace(*value)
	if out == "" {
		return nil
	}
	return &out
}
