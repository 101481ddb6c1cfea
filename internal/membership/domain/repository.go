package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, membership *Membership) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Membership, error)
	FindBySubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID string) (*Membership, error)
	FindLatestByCustomerID(ctx context.Context, db *gorm.DB, customerID string) (*Membership, error)
	ListWithEmail(ctx context.Context, db *gorm.DB) ([]*Membership, error)
	UpdateRenewal(ctx context.Context, db *gorm.DB, id snowflake.ID, subscriptionID string, renewal time.Time) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status MembershipStatus) error
}
