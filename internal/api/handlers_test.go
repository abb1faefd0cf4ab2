package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar_yield/internal/model"
	"solar_yield/internal/service"
	"solar_yield/internal/simulator"
	"solar_yield/internal/store"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	st := store.New()
	var overcast model.CloudCoverByHour
	for h := range overcast {
		overcast[h] = 100
	}
	st.AddRecord("warsaw", model.WeatherRecord{172: overcast})

	svc := service.New(simulator.New(nil, nil), st, nil)
	svc.SetDefaultSite(model.GeoCoordinate{Latitude: 52, Longitude: 21}, 1)
	server := httptest.NewServer(NewRouter(NewHandlers(svc, nil), nil))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestHealth(t *testing.T) {
	server := testServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestSimulate(t *testing.T) {
	server := testServer(t)

	resp := postJSON(t, server.URL+"/api/simulate", map[string]any{
		"latitude": 52, "day": 172, "azimuth": 180, "tilt": 35, "weather": "warsaw",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var res model.SimulationResult
	decodeBody(t, resp, &res)
	assert.Len(t, res.Curve, 91)
	assert.InDelta(t, 94.3, res.EfficiencyPercent, 0.5)
	require.NotNil(t, res.RealEnergy)
	assert.InDelta(t, 0.2*res.IdealEnergy, *res.RealEnergy, 1e-9)
}

func TestSimulate_InlineCloudCover(t *testing.T) {
	server := testServer(t)

	cover := make([]float64, 24)
	resp := postJSON(t, server.URL+"/api/simulate", map[string]any{
		"latitude": 52, "day": 172, "azimuth": 180, "tilt": 35, "cloud_cover": cover,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res model.SimulationResult
	decodeBody(t, resp, &res)
	require.NotNil(t, res.RealEnergy)
	assert.InDelta(t, res.IdealEnergy, *res.RealEnergy, 1e-12)
}

func TestSimulate_ValidationError(t *testing.T) {
	server := testServer(t)

	resp := postJSON(t, server.URL+"/api/simulate", map[string]any{
		"latitude": 95, "day": 172, "azimuth": 180, "tilt": 35,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorResponse
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Error, "latitude")
}

func TestSimulate_BadJSON(t *testing.T) {
	server := testServer(t)

	resp, err := http.Post(server.URL+"/api/simulate", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSimulate_UnknownField(t *testing.T) {
	server := testServer(t)

	resp := postJSON(t, server.URL+"/api/simulate", map[string]any{"latitud": 52})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSimulate_MethodNotAllowed(t *testing.T) {
	server := testServer(t)

	resp, err := http.Get(server.URL + "/api/simulate")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAggregate(t *testing.T) {
	server := testServer(t)

	resp := postJSON(t, server.URL+"/api/aggregate", map[string]any{
		"latitude": 52, "day": 172, "azimuth": 180, "tilt": 35, "weather": "warsaw",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res model.AggregateResult
	decodeBody(t, resp, &res)
	assert.Equal(t, 5, res.Month)
	assert.True(t, res.HasWeather)
	assert.Equal(t, 1, res.WeatherDays)
	assert.Less(t, res.RealMonth, res.IdealMonth)
	assert.InDelta(t, res.IdealMonth, res.Monthly[5].Ideal, 1e-9)
}

func TestAggregate_UnknownWeather(t *testing.T) {
	server := testServer(t)

	resp := postJSON(t, server.URL+"/api/aggregate", map[string]any{
		"latitude": 52, "day": 172, "azimuth": 180, "tilt": 35, "weather": "atlantis",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOptimizeDay(t *testing.T) {
	server := testServer(t)

	resp := postJSON(t, server.URL+"/api/optimize/day", map[string]any{"latitude": 52, "day": 172})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var o model.Orientation
	decodeBody(t, resp, &o)
	assert.Equal(t, model.Orientation{Azimuth: 180, Tilt: 15}, o)
}

func TestOptimizeDay_MorningShadow(t *testing.T) {
	server := testServer(t)

	resp := postJSON(t, server.URL+"/api/optimize/day", map[string]any{
		"latitude": 52, "day": 172, "shadow_from": 4, "shadow_to": 12,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var o model.Orientation
	decodeBody(t, resp, &o)
	assert.Greater(t, o.Azimuth, 180.0)
}

func TestOptimizePeriod(t *testing.T) {
	server := testServer(t)

	resp := postJSON(t, server.URL+"/api/optimize/period", map[string]any{
		"latitude": 52, "start_month": 10, "end_month": 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var o model.Orientation
	decodeBody(t, resp, &o)
	assert.Equal(t, 180.0, o.Azimuth)
	assert.InDelta(t, 74, o.Tilt, 3)

	resp = postJSON(t, server.URL+"/api/optimize/period", map[string]any{
		"latitude": 52, "start_month": 0, "end_month": 12,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWeather(t *testing.T) {
	server := testServer(t)

	resp, err := http.Get(server.URL + "/api/weather")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sums []model.WeatherSummary
	decodeBody(t, resp, &sums)
	require.Len(t, sums, 1)
	assert.Equal(t, model.WeatherSummary{Name: "warsaw", Days: 1, FirstDay: 172, LastDay: 172}, sums[0])
}

func TestTimeCorrection(t *testing.T) {
	server := testServer(t)

	resp, err := http.Get(server.URL + "/api/time-correction?longitude=21&utc_offset=1&day=81")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tc service.TimeCorrection
	decodeBody(t, resp, &tc)
	assert.InDelta(t, 4*6-7.53, tc.Minutes, 1e-9)
}

func TestTimeCorrection_DefaultSite(t *testing.T) {
	server := testServer(t)

	resp, err := http.Get(server.URL + "/api/time-correction?day=81")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tc service.TimeCorrection
	decodeBody(t, resp, &tc)
	assert.InDelta(t, 4*6-7.53, tc.Minutes, 1e-9)
}

func TestTimeCorrection_BadQuery(t *testing.T) {
	server := testServer(t)

	for _, q := range []string{"?longitude=x", "?utc_offset=abc", "?longitude=200", "?day=abc", "?day=365"} {
		resp, err := http.Get(server.URL + "/api/time-correction" + q)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestMetrics(t *testing.T) {
	server := testServer(t)
	postJSON(t, server.URL+"/api/simulate", map[string]any{"latitude": 52, "day": 172, "azimuth": 180, "tilt": 35})

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "solar_simulations_total")
}
