package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"messenger/internal/app"
	"messenger/internal/domain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Controller owns the websocket endpoint: it upgrades the request,
// hands the connection to the orchestrator, and runs the read/write
// pumps for the connection's lifetime.
type Controller struct {
	Orch         *app.Orchestrator
	SendBuffer   int
	WriteTimeout time.Duration
}

func NewController(orch *app.Orchestrator, sendBuffer int, writeTimeout time.Duration) *Controller {
	return &Controller{Orch: orch, SendBuffer: sendBuffer, WriteTimeout: writeTimeout}
}

// Handle serves GET /ws/:chat_id?token=. The token is verified after
// the upgrade so a refusal can be delivered as a policy-violation
// close frame rather than a plain HTTP error.
func (ctl *Controller) Handle(c *gin.Context) {
	chatID := domain.ChatID(c.Param("chat_id"))
	token := c.Query("token")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("upgrade failed")
		return
	}

	wsc := NewWsConn(conn, ctl.SendBuffer)
	sess, err := ctl.Orch.Connect(token, chatID, wsc)
	if err != nil {
		ctl.refuse(conn)
		return
	}

	go ctl.writePump(wsc)
	go ctl.readPump(sess, wsc)
}

func (ctl *Controller) refuse(conn *websocket.Conn) {
	deadline := time.Now().Add(ctl.WriteTimeout)
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
	_ = conn.Close()
}

func (ctl *Controller) writePump(c *WsConn) {
	for data := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.WriteTimeout)); err != nil {
			log.Error().Err(err).Str("module", "ws").Msg("writePump set deadline")
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Error().Err(err).Str("module", "ws").Msg("writePump write error")
			return
		}
	}
}

// readPump treats every inbound text payload as chat content verbatim.
// Any read error means the connection is gone; teardown is idempotent,
// so racing a send-failure teardown from a broadcast is fine.
func (ctl *Controller) readPump(sess *app.Session, c *WsConn) {
	defer func() {
		log.Info().Str("module", "ws").Str("sid", string(sess.ID)).Msg("readPump closing")
		ctl.Orch.Teardown(sess)
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		_ = ctl.Orch.OnMessage(sess, string(data))
	}
}
