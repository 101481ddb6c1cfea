package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/neighborhq/memberdesk/internal/person/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, person *domain.Person) error {
	return db.WithContext(ctx).Create(person).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Person, error) {
	var people []domain.Person
	if err := db.WithContext(ctx).
		Model(&domain.Person{}).
		Where("id = ?", id).
		Limit(1).
		Find(&people).Error; err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, nil
	}
	return &people[0], nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.PersonView, error) {
	var views []domain.PersonView
	err := db.WithContext(ctx).
		Table("people").
		Select("people.*, memberships.tier AS membership_tier, memberships.status AS membership_status, memberships.last_renewal AS last_renewal").
		Joins("LEFT JOIN memberships ON memberships.id = people.membership_id").
		Order("people.full_name asc").
		Find(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (r *repo) ListWithEmail(ctx context.Context, db *gorm.DB) ([]domain.Person, error) {
	var people []domain.Person
	err := db.WithContext(ctx).
		Model(&domain.Person{}).
		Where("email IS NOT NULL AND TRIM(email) <> ''").
		Find(&people).Error
	if err != nil {
		return nil, err
	}
	return people, nil
}

func (r *repo) UpdateMembershipID(ctx context.Context, db *gorm.DB, id snowflake.ID, membershipID snowflake.ID) error {
	return db.WithContext(ctx).
		Exec("UPDATE people SET membership_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", membershipID, id).
		Error
}
