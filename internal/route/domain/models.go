package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Route is a newsletter delivery route. Code is a URL-safe slug derived
// from the name and unique across routes.
type Route struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"column:name" json:"name"`
	Code           string       `gorm:"column:code;uniqueIndex" json:"code"`
	Description    *string      `gorm:"column:description" json:"description,omitempty"`
	HouseholdCount int          `gorm:"column:household_count" json:"household_count"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func (Route) TableName() string {
	return "routes"
}

type CreateRouteRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    *string `json:"description"`
	HouseholdCount int     `json:"household_count"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, route *Route) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Route, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Route, error)
	List(ctx context.Context, db *gorm.DB) ([]Route, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRouteRequest) (*Route, error)
	Get(ctx context.Context, id snowflake.ID) (*Route, error)
	List(ctx context.Context) ([]Route, error)
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrDuplicateCode = errors.New("duplicate_route_code")
	ErrNotFound      = errors.New("route_not_found")
)
