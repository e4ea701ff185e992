package core

import (
	"time"

	"messenger/internal/domain"
)

// Frame is a marshaled outbound payload, framed as one websocket text message.
type Frame []byte

type SessionID string

// Conn abstracts the per-peer messaging transport.
// Owned by the adapter; the adapter must Close() it. TrySend must never
// block: a full outbound buffer or a closed connection is a send failure.
type Conn interface {
	TrySend(Frame) error
	Close()
}

// TokenVerifier resolves a credential token into a known user.
// Called once at connect time; connect blocks on it.
type TokenVerifier interface {
	Verify(token string) (*domain.User, error)
}

// MessageRecorder is the durable write half of the message store.
// Append must complete before the message is fanned out, and must
// populate exactly the fields the history read path returns.
type MessageRecorder interface {
	Append(chatID domain.ChatID, author *domain.User, content string, sentAt time.Time) error
}
