package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"messenger/internal/core"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

// WsConn wraps a gorilla websocket with a buffered outbound channel.
// TrySend never blocks: a full buffer counts as a send failure, which
// the orchestrator treats as an implicit disconnect.
type WsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func NewWsConn(conn *websocket.Conn, buffer int) *WsConn {
	return &WsConn{
		conn: conn,
		send: make(chan core.Frame, buffer),
	}
}

func (c *WsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}
