package domain

import "time"

type MessageID string

// Message is the persisted chat message row. The read path joins the
// author's username; it is not stored on the row itself.
type Message struct {
	ID        MessageID `gorm:"primarykey;size:36" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
	ChatID    ChatID    `gorm:"size:36;index;not null" json:"chat_id"`
	UserID    UserID    `gorm:"size:36;not null" json:"user_id"`
}

func (Message) TableName() string { return "messages" }
