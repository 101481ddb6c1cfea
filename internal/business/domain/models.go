package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Business is a local sponsor or advertiser record.
type Business struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	Name             string       `gorm:"column:name" json:"name"`
	Email            *string      `gorm:"column:email" json:"email,omitempty"`
	Phone            *string      `gorm:"column:phone" json:"phone,omitempty"`
	Website          *string      `gorm:"column:website" json:"website,omitempty"`
	Address          *string      `gorm:"column:address" json:"address,omitempty"`
	SponsorshipLevel *string      `gorm:"column:sponsorship_level" json:"sponsorship_level,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func (Business) TableName() string {
	return "businesses"
}

type CreateBusinessRequest struct {
	Name             string  `json:"name" binding:"required"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Website          *string `json:"website"`
	Address          *string `json:"address"`
	SponsorshipLevel *string `json:"sponsorship_level"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, business *Business) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Business, error)
	List(ctx context.Context, db *gorm.DB) ([]Business, error)
}

type Service interface {
	Create(ctx context.Context, req CreateBusinessRequest) (*Business, error)
	Get(ctx context.Context, id snowflake.ID) (*Business, error)
	List(ctx context.Context) ([]Business, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("business_not_found")
)
