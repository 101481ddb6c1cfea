package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/neighborhq/memberdesk/internal/route/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, route *domain.Route) error {
	return db.WithContext(ctx).Create(route).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Route, error) {
	var routes []domain.Route
	if err := db.WithContext(ctx).
		Model(&domain.Route{}).
		Where("id = ?", id).
		Limit(1).
		Find(&routes).Error; err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, nil
	}
	return &routes[0], nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Route, error) {
	var routes []domain.Route
	if err := db.WithContext(ctx).
		Model(&domain.Route{}).
		Where("code = ?", code).
		Limit(1).
		Find(&routes).Error; err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, nil
	}
	return &routes[0], nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Route, error) {
	var routes []domain.Route
	err := db.WithContext(ctx).
		Model(&domain.Route{}).
		Order("name asc").
		Find(&routes).Error
	if err != nil {
		return nil, err
	}
	return routes, nil
}
