package app

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"messenger/internal/core"
	"messenger/internal/domain"
)

// Orchestrator drives the connection lifecycle: verify, register,
// fan out, tear down. It owns no transport resources; adapters hand it
// a core.Conn and keep responsibility for closing the socket itself.
type Orchestrator struct {
	Roster   *Roster
	Verifier core.TokenVerifier
	Store    core.MessageRecorder
}

func NewOrchestrator(roster *Roster, verifier core.TokenVerifier, store core.MessageRecorder) *Orchestrator {
	return &Orchestrator{Roster: roster, Verifier: verifier, Store: store}
}

// Connect validates the token and, only on success, registers the
// connection and announces presence to the chat. A failed verification
// leaves the roster untouched; the caller closes the transport with a
// policy-violation code.
//
// A prior session under the same username is evicted silently: it is a
// presence-only move, no chat event is emitted and the chat that was
// left gets no immediate presence update.
func (o *Orchestrator) Connect(token string, chat domain.ChatID, conn core.Conn) (*Session, error) {
	user, err := o.Verifier.Verify(token)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.orchestrator").Str("chat", string(chat)).Msg("connect refused")
		return nil, err
	}

	s := &Session{
		ID:   core.SessionID(uuid.NewString()),
		User: user,
		Chat: chat,
		Conn: conn,
	}
	o.Roster.Register(s)
	log.Info().Str("module", "app.orchestrator").Str("sid", string(s.ID)).
		Str("username", user.Username).Str("chat", string(chat)).Msg("session joined")

	o.BroadcastPresence(chat)
	return s, nil
}

// OnMessage handles one inbound text payload from an active session.
// The message is persisted first; only after the durable write succeeds
// is it fanned out. A store failure drops the message, reports it back
// on the sender's own connection, and keeps the session active.
func (o *Orchestrator) OnMessage(s *Session, content string) error {
	sentAt := time.Now().UTC()
	if err := o.Store.Append(s.Chat, s.User, content, sentAt); err != nil {
		log.Error().Err(err).Str("module", "app.orchestrator").Str("sid", string(s.ID)).
			Str("chat", string(s.Chat)).Msg("persist failed, dropping message")
		_ = s.Conn.TrySend(errorFrame("message_not_saved"))
		return err
	}
	o.Broadcast(s.Chat, chatFrame(content, s.User.Username, sentAt))
	return nil
}

// Teardown removes the session from the roster and closes its
// transport. Safe to call more than once for the same session, and
// safe after the session was evicted by a reconnect: a stale teardown
// is a no-op and emits nothing. The presence update goes to the chat
// the session actually left.
func (o *Orchestrator) Teardown(s *Session) {
	if !o.Roster.Remove(s) {
		s.Conn.Close()
		return
	}
	s.Conn.Close()
	log.Info().Str("module", "app.orchestrator").Str("sid", string(s.ID)).
		Str("username", s.User.Username).Str("chat", string(s.Chat)).Msg("session left")
	o.BroadcastPresence(s.Chat)
}

// Broadcast fans a frame out to every member of the chat. It iterates
// a snapshot, so a teardown triggered by a failed send cannot corrupt
// the pass; failed peers are collected and torn down only after the
// snapshot is exhausted, which bounds the presence-rebroadcast
// recursion to the failing connections of this pass.
func (o *Orchestrator) Broadcast(chat domain.ChatID, frame core.Frame) {
	members := o.Roster.Members(chat)

	var failed []*Session
	for _, m := range members {
		if err := m.Conn.TrySend(frame); err != nil {
			failed = append(failed, m)
		}
	}
	for _, m := range failed {
		log.Warn().Str("module", "app.orchestrator").Str("sid", string(m.ID)).
			Str("username", m.User.Username).Msg("send failed, tearing down peer")
		o.Teardown(m)
	}
}

// BroadcastPresence emits the distinct online usernames of the chat to
// all its members. A chat with no members is a no-op by construction.
func (o *Orchestrator) BroadcastPresence(chat domain.ChatID) {
	o.Broadcast(chat, presenceFrame(o.Roster.Usernames(chat)))
}
