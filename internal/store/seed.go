package store

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"messenger/internal/auth"
	"messenger/internal/domain"
)

var defaultUsers = []struct {
	Username string
	Password string
}{
	{"arudenaytsan", "gdbHDJ231D"},
	{"klementevyp", "jhbsfHBD7213"},
}

var defaultChats = []string{"Sweet Home"}

// Seed creates the default users and chats on a fresh database.
// It is a no-op once any user exists.
func Seed(db *gorm.DB) error {
	users := NewUsers(db)
	chats := NewChats(db)

	n, err := users.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, du := range defaultUsers {
		hash, err := auth.HashPassword(du.Password)
		if err != nil {
			return fmt.Errorf("failed to hash default password: %w", err)
		}
		user, err := domain.NewUser(du.Username, hash)
		if err != nil {
			return err
		}
		if err := users.Create(user); err != nil {
			return err
		}
	}

	for _, name := range defaultChats {
		if _, err := chats.FindByName(name); err == nil {
			continue
		} else if !errors.Is(err, ErrChatNotFound) {
			return err
		}
		if err := chats.Create(domain.NewChat(name)); err != nil {
			return err
		}
	}

	log.Info().Str("module", "store").Int("users", len(defaultUsers)).Int("chats", len(defaultChats)).Msg("seeded default data")
	return nil
}
