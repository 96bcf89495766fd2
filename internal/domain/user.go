package domain

import (
	"context"
	"time"
)

// User roles
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Password   string    `json:"-"` // bcrypt hash, never serialized
	Role       string    `json:"role"`
	Phone      *string   `json:"phone,omitempty"`
	Location   *string   `json:"location,omitempty"`
	Bio        *string   `json:"bio,omitempty"`
	Skills     []string  `json:"skills,omitempty"`
	Experience *string   `json:"experience,omitempty"`
	Education  *string   `json:"education,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserSummary is the projection embedded in job and application responses
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary returns the embeddable projection of a user
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ProfileUpdate carries the mutable profile fields. Email is immutable
// through this path.
type ProfileUpdate struct {
	Name       string   `json:"name" validate:"required,max=100,valid_name,no_emoji"`
	Phone      *string  `json:"phone" validate:"omitempty,valid_phone"`
	Location   *string  `json:"location" validate:"omitempty,max=150"`
	Bio        *string  `json:"bio" validate:"omitempty,max=2000,no_emoji"`
	Skills     []string `json:"skills" validate:"omitempty,dive,max=60"`
	Experience *string  `json:"experience" validate:"omitempty,max=4000"`
	Education  *string  `json:"education" validate:"omitempty,max=4000"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
}

// AuthResult is a signed session plus the user it identifies
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type AuthUsecase interface {
	Register(ctx context.Context, name, email, password, role string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*User, error)
}
