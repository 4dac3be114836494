package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a profile cache keyed by the identity provider's stable user id.
// Profile fields are taken from the provider as-is and refreshed on login.
type User struct {
	ID         int64
	ExternalID string
	Name       string
	Email      string
	Image      string
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type UserRepository interface {
	Upsert(ctx context.Context, user *User) error
	GetByExternalId(ctx context.Context, externalID string) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
}
