package app

import (
	"encoding/json"
	"time"

	"messenger/internal/core"
)

// Outbound frame types. These shapes are the wire contract with the
// frontend and must not change field names.
const (
	EventMessage     = "message"
	EventOnlineCount = "online_count"
	EventError       = "error"
)

type ChatEvent struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

type PresenceEvent struct {
	Type  string   `json:"type"`
	Count int      `json:"count"`
	Users []string `json:"users"`
}

type ErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func chatFrame(content, username string, sentAt time.Time) core.Frame {
	b, _ := json.Marshal(ChatEvent{
		Type:      EventMessage,
		Content:   content,
		Username:  username,
		Timestamp: sentAt.UTC().Format(time.RFC3339),
	})
	return b
}

func presenceFrame(users []string) core.Frame {
	b, _ := json.Marshal(PresenceEvent{
		Type:  EventOnlineCount,
		Count: len(users),
		Users: users,
	})
	return b
}

func errorFrame(reason string) core.Frame {
	b, _ := json.Marshal(ErrorEvent{Type: EventError, Error: reason})
	return b
}
