package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Person is a resident record. MembershipID is set only by the linking
// pass, never through the write API.
type Person struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	FullName     string        `gorm:"column:full_name" json:"full_name"`
	Email        *string       `gorm:"column:email" json:"email,omitempty"`
	Phone        *string       `gorm:"column:phone" json:"phone,omitempty"`
	Address      *string       `gorm:"column:address" json:"address,omitempty"`
	HouseholdID  *snowflake.ID `gorm:"column:household_id" json:"household_id,omitempty"`
	MembershipID *snowflake.ID `gorm:"column:membership_id" json:"membership_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (Person) TableName() string {
	return "people"
}

// NormalizedEmail lower-cases and trims the email; empty when unset.
func (p *Person) NormalizedEmail() string {
	if p.Email == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*p.Email))
}

// PersonView is a Person joined with its linked membership, the shape
// the list endpoint returns.
type PersonView struct {
	Person
	MembershipTier   *string    `gorm:"column:membership_tier" json:"membership_tier,omitempty"`
	MembershipStatus *string    `gorm:"column:membership_status" json:"membership_status,omitempty"`
	LastRenewal      *time.Time `gorm:"column:last_renewal" json:"last_renewal,omitempty"`
}

type CreatePersonRequest struct {
	FullName    string        `json:"full_name" binding:"required"`
	Email       *string       `json:"email"`
	Phone       *string       `json:"phone"`
	Address     *string       `json:"address"`
	HouseholdID *snowflake.ID `json:"household_id"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, person *Person) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Person, error)
	List(ctx context.Context, db *gorm.DB) ([]PersonView, error)
	ListWithEmail(ctx context.Context, db *gorm.DB) ([]Person, error)
	UpdateMembershipID(ctx context.Context, db *gorm.DB, id snowflake.ID, membershipID snowflake.ID) error
}

type Service interface {
	Create(ctx context.Context, req CreatePersonRequest) (*Person, error)
	Get(ctx context.Context, id snowflake.ID) (*Person, error)
	List(ctx context.Context) ([]PersonView, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("person_not_found")
)
