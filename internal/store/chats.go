package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"messenger/internal/domain"
)

var ErrChatNotFound = errors.New("chat not found")

// Chats provides access to chat storage.
type Chats struct {
	db *gorm.DB
}

func NewChats(db *gorm.DB) *Chats {
	return &Chats{db: db}
}

func (r *Chats) Create(chat *domain.Chat) error {
	if err := r.db.Create(chat).Error; err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	return nil
}

func (r *Chats) FindByName(name string) (*domain.Chat, error) {
	var chat domain.Chat
	if err := r.db.First(&chat, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to find chat: %w", err)
	}
	return &chat, nil
}

func (r *Chats) List() ([]*domain.Chat, error) {
	var chats []*domain.Chat
	if err := r.db.Find(&chats).Error; err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return chats, nil
}
