package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar_yield/internal/model"
	"solar_yield/internal/simulator"
)

func newTestBridge() (*Bridge, *Client) {
	hub := NewHub(nil)
	client := &Client{hub: hub, send: make(chan []byte, 256)}
	hub.Register(client)
	bridge := NewBridge(hub, nil)
	return bridge, client
}

func receiveEnvelope(t *testing.T, c *Client) Envelope {
	t.Helper()
	msg := <-c.send
	var env Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	return env
}

func TestBridge_OnOptimized(t *testing.T) {
	bridge, client := newTestBridge()

	bridge.OnOptimized(simulator.OptimizationEvent{
		Kind:        simulator.KindPeriod,
		Latitude:    52,
		StartMonth:  10,
		EndMonth:    1,
		Shadow:      model.ShadowWindow{From: 12, To: 14},
		Orientation: model.Orientation{Azimuth: 180, Tilt: 74},
	})

	env := receiveEnvelope(t, client)
	assert.Equal(t, TypeOptResult, env.Type)

	var p OptResultPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	assert.Equal(t, simulator.KindPeriod, p.Kind)
	assert.Equal(t, 52.0, p.Latitude)
	assert.Equal(t, 10, p.StartMonth)
	assert.Equal(t, 1, p.EndMonth)
	assert.Equal(t, 12.0, p.Shadow.From)
	assert.Equal(t, model.Orientation{Azimuth: 180, Tilt: 74}, p.Orientation)
}

func TestBridge_ImplementsListener(t *testing.T) {
	bridge, client := newTestBridge()
	engine := simulator.New(nil, bridge)

	o := engine.OptimizeDay(52, 172, model.NoShadow)

	env := receiveEnvelope(t, client)
	assert.Equal(t, TypeOptResult, env.Type)

	var p OptResultPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	assert.Equal(t, simulator.KindDay, p.Kind)
	assert.Equal(t, 172, p.Day)
	assert.Equal(t, o, p.Orientation)
}

func TestBridge_NoClients(t *testing.T) {
	bridge := NewBridge(NewHub(nil), nil)
	assert.NotPanics(t, func() {
		bridge.OnOptimized(simulator.OptimizationEvent{Kind: simulator.KindDay})
	})
}
