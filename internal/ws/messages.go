package ws

import (
	"encoding/json"
	"errors"

	"solar_yield/internal/model"
	"solar_yield/internal/service"
	"solar_yield/internal/simulator"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client -> Server payloads are the service request types.

type (
	SimulatePayload       = service.SimulateRequest
	AggregatePayload      = service.AggregateRequest
	OptimizeDayPayload    = service.OptimizeDayRequest
	OptimizePeriodPayload = service.OptimizePeriodRequest
)

// Server -> Client messages

type SimResultPayload struct {
	Request SimulatePayload        `json:"request"`
	Result  model.SimulationResult `json:"result"`
}

type AggregateResultPayload struct {
	Request AggregatePayload      `json:"request"`
	Result  model.AggregateResult `json:"result"`
}

// OptResultPayload is broadcast to every client after an optimizer run.
type OptResultPayload = simulator.OptimizationEvent

type DataLoadedPayload struct {
	Weather         []model.WeatherSummary `json:"weather"`
	CachedBaselines int                    `json:"cached_baselines"`
}

type ErrorPayload struct {
	Request string `json:"request"`
	Message string `json:"message"`
}

// Message type constants
const (
	// Client -> Server
	TypeSimSimulate  = "sim:simulate"
	TypeSimAggregate = "sim:aggregate"
	TypeOptDay       = "opt:day"
	TypeOptPeriod    = "opt:period"

	// Server -> Client
	TypeSimResult          = "sim:result"
	TypeSimAggregateResult = "sim:aggregate_result"
	TypeOptResult          = "opt:result"
	TypeDataLoaded         = "data:loaded"
	TypeError              = "error"
)

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

var errUnknownType = errors.New("unknown message type")
