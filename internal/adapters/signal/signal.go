package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"impostor/internal/app/orch"
	"impostor/internal/core"
	"impostor/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

// Fallbacks when the config leaves them unset.
const (
	defaultEventRate  = 10
	defaultEventBurst = 20
	defaultPingPeriod = 54 * time.Second
)

type SignalWSController struct {
	Orch *orch.Orchestrator

	// Per-connection limits, filled from config by the router.
	ReadLimit  int64
	PingPeriod time.Duration
	EventRate  float64
	EventBurst int
}

func NewSignalWSController(orch *orch.Orchestrator) *SignalWSController {
	return &SignalWSController{Orch: orch}
}

func (ctl *SignalWSController) pingPeriod() time.Duration {
	if ctl.PingPeriod > 0 {
		return ctl.PingPeriod
	}
	return defaultPingPeriod
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame
	lim  *rate.Limiter

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
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

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and runs the connection's pumps. The
// "ct" cookie token is the fallback identity until a join payload supplies
// the client's own stable id.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	token := c.GetString("client_token")
	log.Info().Str("module", "signal").Str("ct", token).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	limit, burst := ctl.EventRate, ctl.EventBurst
	if limit <= 0 {
		limit = defaultEventRate
	}
	if burst <= 0 {
		burst = defaultEventBurst
	}
	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
		lim:  rate.NewLimiter(rate.Limit(limit), burst),
	}

	cid := core.ConnID(uuid.NewString())
	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Registry.Bind(cid, domain.PlayerID(token), conn, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cid, conn)
}
