package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/neighborhq/memberdesk/internal/business/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, business *domain.Business) error {
	return db.WithContext(ctx).Create(business).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Business, error) {
	var businesses []domain.Business
	if err := db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("id = ?", id).
		Limit(1).
		Find(&businesses).Error; err != nil {
		return nil, err
	}
	if len(businesses) == 0 {
		return nil, nil
	}
	return &businesses[0], nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Business, error) {
	var businesses []domain.Business
	err := db.WithContext(ctx).
		Model(&domain.Business{}).
		Order("name asc").
		Find(&businesses).Error
	if err != nil {
		return nil, err
	}
	return businesses, nil
}
