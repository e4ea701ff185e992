package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"messenger/internal/core"
	"messenger/internal/domain"
)

// Session is the registration record for one live connection. It is
// created at connect time and passed through every lifecycle call; the
// transport handle itself is never annotated.
type Session struct {
	ID   core.SessionID
	User *domain.User
	Chat domain.ChatID
	Conn core.Conn
}

// Roster holds the session registry (username to active session) and
// the room directory (chat to session set). Both live under one mutex:
// the eviction inside Register touches them together, and the invariant
// that a username maps to at most one chat while a session belongs to
// at most one member set must hold for every observer.
type Roster struct {
	mu     sync.Mutex
	byUser map[string]*Session
	chats  map[domain.ChatID]map[*Session]struct{}
}

func NewRoster() *Roster {
	return &Roster{
		byUser: make(map[string]*Session),
		chats:  make(map[domain.ChatID]map[*Session]struct{}),
	}
}

// Register inserts the session into its chat's member set and makes it
// the username's active session. A prior session under the same
// username is pulled out of its chat's set first; last registration
// wins. The evicted session, if any, is returned so the caller can
// decide what to do with its transport.
func (r *Roster) Register(s *Session) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted *Session
	if old, ok := r.byUser[s.User.Username]; ok && old != s {
		if set, ok := r.chats[old.Chat]; ok {
			delete(set, old)
		}
		evicted = old
		log.Info().Str("module", "app.roster").Str("username", s.User.Username).
			Str("from_chat", string(old.Chat)).Str("to_chat", string(s.Chat)).Msg("evicted prior session")
	}

	r.byUser[s.User.Username] = s
	set := r.chats[s.Chat]
	if set == nil {
		set = make(map[*Session]struct{})
		r.chats[s.Chat] = set
	}
	set[s] = struct{}{}
	return evicted
}

// Remove takes the session out of both structures. It is keyed by
// session identity: a stale remove after the username re-registered
// elsewhere leaves the newer session untouched. Returns whether the
// session was still a member of its chat's set, so callers can skip
// follow-up work for already-removed sessions.
func (r *Roster) Remove(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := false
	if set, ok := r.chats[s.Chat]; ok {
		if _, in := set[s]; in {
			delete(set, s)
			removed = true
		}
	}
	if cur, ok := r.byUser[s.User.Username]; ok && cur == s {
		delete(r.byUser, s.User.Username)
	}
	return removed
}

// Members returns a snapshot of the chat's session set. Safe to iterate
// while other goroutines mutate the roster.
func (r *Roster) Members(chat domain.ChatID) []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.chats[chat]
	out := make([]*Session, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}

// Usernames returns the distinct usernames present in the chat.
// Distinctness matters: during a registry swap the directory can
// transiently hold two sessions sharing a username.
func (r *Roster) Usernames(chat domain.ChatID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{}, len(r.chats[chat]))
	out := make([]string, 0, len(r.chats[chat]))
	for s := range r.chats[chat] {
		if _, ok := seen[s.User.Username]; ok {
			continue
		}
		seen[s.User.Username] = struct{}{}
		out = append(out, s.User.Username)
	}
	return out
}

// ChatOf reports which chat the username is currently registered in.
func (r *Roster) ChatOf(username string) (domain.ChatID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byUser[username]
	if !ok {
		return "", false
	}
	return s.Chat, true
}
