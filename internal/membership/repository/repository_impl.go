package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/neighborhq/memberdesk/internal/membership/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, membership *domain.Membership) error {
	return db.WithContext(ctx).Create(membership).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Membership, error) {
	var rows []*domain.Membership
	err := db.WithContext(ctx).
		Model(&domain.Membership{}).
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *repo) FindBySubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID string) (*domain.Membership, error) {
	var rows []*domain.Membership
	err := db.WithContext(ctx).
		Model(&domain.Membership{}).
		Where("stripe_subscription_id = ?", subscriptionID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *repo) FindLatestByCustomerID(ctx context.Context, db *gorm.DB, customerID string) (*domain.Membership, error) {
	var rows []*domain.Membership
	err := db.WithContext(ctx).
		Model(&domain.Membership{}).
		Where("stripe_customer_id = ?", customerID).
		Order("created_at desc, id desc").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *repo) ListWithEmail(ctx context.Context, db *gorm.DB) ([]*domain.Membership, error) {
	var rows []*domain.Membership
	err := db.WithContext(ctx).
		Model(&domain.Membership{}).
		Where("customer_email IS NOT NULL AND TRIM(customer_email) <> ''").
		Order("last_renewal desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) UpdateRenewal(ctx context.Context, db *gorm.DB, id snowflake.ID, subscriptionID string, renewal time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE memberships
		 SET stripe_subscription_id = ?, status = ?, last_renewal = ?, is_subscription = ?, updated_at = ?
		 WHERE id = ?`,
		subscriptionID,
		domain.MembershipStatusActive,
		renewal,
		true,
		time.Now().UTC(),
		id,
	).Error
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.MembershipStatus) error {
	return db.WithContext(ctx).Exec(
		`UPDATE memberships SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		time.Now().UTC(),
		id,
	).Error
}
