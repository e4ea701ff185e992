package domain

import "github.com/google/uuid"

type ChatID string

// Chat is a named room. Live membership is not persisted here; the
// roster tracks it in memory only.
type Chat struct {
	ID   ChatID `gorm:"primarykey;size:36" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (Chat) TableName() string { return "chats" }

func NewChat(name string) *Chat {
	return &Chat{ID: ChatID(uuid.NewString()), Name: name}
}
