// Package domain contains entities without logic, just meta-data.
package domain

import (
	"errors"

	"github.com/google/uuid"
)

const MaxUsernameLen = 36

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

type UserID string

type User struct {
	ID             UserID `gorm:"primarykey;size:36" json:"id"`
	Username       string `gorm:"size:36;uniqueIndex;not null" json:"username"`
	HashedPassword string `gorm:"not null" json:"-"`
}

func (User) TableName() string { return "users" }

// NewUser is a tiny helper to avoid ad-hoc struct literals in adapters.
// The password must already be hashed; domain never sees plaintext.
func NewUser(username, hashedPassword string) (*User, error) {
	if len(username) == 0 {
		return nil, ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return nil, ErrUsernameTooLong
	}
	return &User{ID: UserID(uuid.NewString()), Username: username, HashedPassword: hashedPassword}, nil
}
