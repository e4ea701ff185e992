package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"messenger/internal/domain"
)

// MessageRecord is the history read model: exactly the fields the
// persist path writes, with the author's username resolved.
type MessageRecord struct {
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

// Messages provides access to message storage. It implements
// core.MessageRecorder.
type Messages struct {
	db *gorm.DB
}

func NewMessages(db *gorm.DB) *Messages {
	return &Messages{db: db}
}

// Append durably records one chat message.
func (r *Messages) Append(chatID domain.ChatID, author *domain.User, content string, sentAt time.Time) error {
	msg := domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		Content:   content,
		Timestamp: sentAt,
		ChatID:    chatID,
		UserID:    author.ID,
	}
	if err := r.db.Create(&msg).Error; err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// ListByChat returns the chat's messages in ascending timestamp order.
// An unknown chat yields an empty slice.
func (r *Messages) ListByChat(chatID domain.ChatID) ([]MessageRecord, error) {
	records := make([]MessageRecord, 0)
	err := r.db.Table("messages").
		Select("messages.content, users.username, messages.timestamp").
		Joins("JOIN users ON users.id = messages.user_id").
		Where("messages.chat_id = ?", chatID).
		Order("messages.timestamp ASC").
		Scan(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return records, nil
}
