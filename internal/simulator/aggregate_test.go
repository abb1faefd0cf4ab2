package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar_yield/internal/model"
	"solar_yield/internal/solar"
)

func TestAggregate_NoWeather(t *testing.T) {
	res := aggregate(lat52, south35, model.NoShadow, summer, nil, 4)

	assert.False(t, res.HasWeather)
	assert.Zero(t, res.RealYear)
	assert.Zero(t, res.RealMonth)
	assert.Zero(t, res.WeatherDays)
	assert.Equal(t, 5, res.Month)
	assert.Greater(t, res.IdealYear, res.IdealMonth)
	assert.Equal(t, res.Monthly[5].Ideal, res.IdealMonth)

	var want float64
	for doy := solar.MonthStartDay(5); doy <= solar.MonthEndDay(5); doy++ {
		want += IdealEnergy(lat52, doy, south35, model.NoShadow)
	}
	assert.InDelta(t, want, res.IdealMonth, 1e-9)
}

func TestAggregate_MonthsSumToYear(t *testing.T) {
	weather := model.WeatherRecord{}
	for doy := 0; doy < solar.DaysInYear; doy += 3 {
		weather[doy] = uniformCloud(float64(doy % 100))
	}
	res := aggregate(lat52, south35, midday, 40, weather, 8)

	var sumIdeal, sumReal float64
	for _, m := range res.Monthly {
		sumIdeal += m.Ideal
		sumReal += m.Real
	}
	assert.InDelta(t, res.IdealYear, sumIdeal, 1e-9)
	assert.InDelta(t, res.RealYear, sumReal, 1e-9)
	assert.Less(t, res.RealYear, res.IdealYear)
}

func TestAggregate_ClearWeatherMatchesIdeal(t *testing.T) {
	weather := model.WeatherRecord{}
	for doy := 0; doy < solar.DaysInYear; doy++ {
		weather[doy] = allClear
	}
	res := aggregate(lat52, south35, model.NoShadow, 0, weather, 4)

	assert.True(t, res.HasWeather)
	assert.Equal(t, solar.DaysInYear, res.WeatherDays)
	assert.InDelta(t, res.IdealYear, res.RealYear, 1e-9)
	assert.InDelta(t, res.IdealMonth, res.RealMonth, 1e-9)
}

func TestAggregate_MissingDaysAreCloudFree(t *testing.T) {
	// Only January carries weather, fully overcast.
	weather := model.WeatherRecord{}
	for doy := solar.MonthStartDay(0); doy <= solar.MonthEndDay(0); doy++ {
		weather[doy] = uniformCloud(100)
	}
	res := aggregate(lat52, south35, model.NoShadow, 0, weather, 4)

	assert.Equal(t, 31, res.WeatherDays)
	assert.InDelta(t, 0.2*res.Monthly[0].Ideal, res.Monthly[0].Real, 1e-9)
	for m := 1; m < 12; m++ {
		assert.InDelta(t, res.Monthly[m].Ideal, res.Monthly[m].Real, 1e-9, "month %d", m)
	}
}

func TestAggregate_WorkerCountDoesNotChangeTotals(t *testing.T) {
	weather := model.WeatherRecord{10: uniformCloud(40), 200: uniformCloud(80)}
	one := aggregate(lat52, south35, midday, 200, weather, 1)
	many := aggregate(lat52, south35, midday, 200, weather, 32)
	unbounded := aggregate(lat52, south35, midday, 200, weather, 0)

	require.Equal(t, one, many)
	require.Equal(t, one, unbounded)
}
