package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"solar_yield/internal/log"
	"solar_yield/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes messages to the service.
// Simulation results go back to the requesting client; optimizer results
// reach every client through the Bridge.
type Handler struct {
	hub *Hub
	svc *service.Service
	log *zap.SugaredLogger
}

func NewHandler(hub *Hub, svc *service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{hub: hub, svc: svc, log: log.OrNop(logger)}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	// Send initial data:loaded message
	h.sendDataLoaded(client)

	// Read messages from client
	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warnw("websocket read failed", "error", err)
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.log.Debugw("invalid message", "error", err)
		h.sendError(c, "", err)
		return
	}

	switch env.Type {
	case TypeSimSimulate:
		var p SimulatePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, env.Type, err)
			return
		}
		res, err := h.svc.Simulate(p)
		if err != nil {
			h.sendError(c, env.Type, err)
			return
		}
		h.send(c, TypeSimResult, SimResultPayload{Request: p, Result: res})

	case TypeSimAggregate:
		var p AggregatePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, env.Type, err)
			return
		}
		res, err := h.svc.Aggregate(p)
		if err != nil {
			h.sendError(c, env.Type, err)
			return
		}
		h.send(c, TypeSimAggregateResult, AggregateResultPayload{Request: p, Result: res})

	case TypeOptDay:
		var p OptimizeDayPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, env.Type, err)
			return
		}
		// The result is broadcast by the engine listener.
		if _, err := h.svc.OptimizeDay(p); err != nil {
			h.sendError(c, env.Type, err)
		}

	case TypeOptPeriod:
		var p OptimizePeriodPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, env.Type, err)
			return
		}
		if _, err := h.svc.OptimizePeriod(p); err != nil {
			h.sendError(c, env.Type, err)
		}

	default:
		h.log.Debugw("unknown message type", "type", env.Type)
		h.sendError(c, env.Type, errUnknownType)
	}
}

// BroadcastDataLoaded tells every client about the current weather records.
func (h *Handler) BroadcastDataLoaded() {
	msg, err := h.dataLoadedMessage()
	if err != nil {
		h.log.Errorw("creating data:loaded message", "error", err)
		return
	}
	h.hub.Broadcast(msg)
}

func (h *Handler) dataLoadedMessage() ([]byte, error) {
	return NewEnvelope(TypeDataLoaded, DataLoadedPayload{
		Weather:         h.svc.WeatherSummaries(),
		CachedBaselines: h.svc.Engine().CachedBaselines(),
	})
}

func (h *Handler) sendDataLoaded(c *Client) {
	msg, err := h.dataLoadedMessage()
	if err != nil {
		h.log.Errorw("creating data:loaded message", "error", err)
		return
	}
	h.hub.trySend(c, msg)
}

func (h *Handler) send(c *Client, msgType string, payload any) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		h.log.Errorw("marshaling reply", "type", msgType, "error", err)
		return
	}
	if !h.hub.trySend(c, msg) {
		h.log.Warnw("client buffer full, dropping reply", "type", msgType, "remote", c.remoteAddr())
	}
}

func (h *Handler) sendError(c *Client, request string, err error) {
	h.send(c, TypeError, ErrorPayload{Request: request, Message: err.Error()})
}
