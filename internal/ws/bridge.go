package ws

import (
	"go.uber.org/zap"

	"solar_yield/internal/log"
	"solar_yield/internal/simulator"
)

// Bridge implements simulator.Listener and broadcasts events to the WebSocket hub.
type Bridge struct {
	hub *Hub
	log *zap.SugaredLogger
}

func NewBridge(hub *Hub, logger *zap.SugaredLogger) *Bridge {
	return &Bridge{hub: hub, log: log.OrNop(logger)}
}

func (b *Bridge) OnOptimized(ev simulator.OptimizationEvent) {
	msg, err := NewEnvelope(TypeOptResult, OptResultPayload(ev))
	if err != nil {
		b.log.Errorw("marshaling optimization result", "error", err)
		return
	}
	b.hub.Broadcast(msg)
}
