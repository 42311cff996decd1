package models

import (
	"strings"
	"time"
)

type User struct {
	ID             int64     `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	HashedPassword string    `json:"-" db:"hashed_password"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	IsSuperuser    bool      `json:"is_superuser" db:"is_superuser"`
	FirstName      *string   `json:"first_name,omitempty" db:"first_name"`
	LastName       *string   `json:"last_name,omitempty" db:"last_name"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// FullName joins first and last name, skipping whichever is not set.
func (u *User) FullName() string {
	parts := make([]string, 0, 2)
	if u.FirstName != nil {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil {
		parts = append(parts, *u.LastName)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
