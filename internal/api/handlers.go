package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"solar_yield/internal/service"
)

// maxBodyBytes bounds request bodies. The largest request carries 24 cloud
// cover values.
const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handlers) Health(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) Simulate(w http.ResponseWriter, req *http.Request) {
	var body service.SimulateRequest
	if !h.decode(w, req, &body) {
		return
	}
	res, err := h.svc.Simulate(body)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) Aggregate(w http.ResponseWriter, req *http.Request) {
	var body service.AggregateRequest
	if !h.decode(w, req, &body) {
		return
	}
	res, err := h.svc.Aggregate(body)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) OptimizeDay(w http.ResponseWriter, req *http.Request) {
	var body service.OptimizeDayRequest
	if !h.decode(w, req, &body) {
		return
	}
	o, err := h.svc.OptimizeDay(body)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handlers) OptimizePeriod(w http.ResponseWriter, req *http.Request) {
	var body service.OptimizePeriodRequest
	if !h.decode(w, req, &body) {
		return
	}
	o, err := h.svc.OptimizePeriod(body)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handlers) Weather(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.WeatherSummaries())
}

func (h *Handlers) TimeCorrection(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	site, utcOffset := h.svc.DefaultSite()
	body := service.TimeCorrectionRequest{Longitude: site.Longitude, UTCOffset: utcOffset}

	var err error
	if body.Longitude, err = queryFloat(q.Get("longitude"), body.Longitude); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid longitude: " + err.Error()})
		return
	}
	if body.UTCOffset, err = queryFloat(q.Get("utc_offset"), body.UTCOffset); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid utc_offset: " + err.Error()})
		return
	}
	if s := q.Get("day"); s != "" {
		if body.Day, err = strconv.Atoi(s); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid day: " + err.Error()})
			return
		}
	}

	tc, err := h.svc.TimeCorrection(body)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tc)
}

// queryFloat parses s, returning def when s is empty.
func queryFloat(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (h *Handlers) decode(w http.ResponseWriter, req *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("decoding request: %v", err)})
		return false
	}
	return true
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUnknownWeather):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		h.log.Errorw("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
