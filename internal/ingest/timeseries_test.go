package ingest

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSeriesParser_Parse(t *testing.T) {
	input := `time,cloud_cover
2023-01-01T00:00,10
2023-01-01T13:00,90
2023-12-31T23:00,50`

	parser := &TimeSeriesParser{}
	record, err := parser.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, record, 2)
	assert.InDelta(t, 10, record[0][0], 0.001)
	assert.InDelta(t, 90, record[0][13], 0.001)
	assert.InDelta(t, 50, record[364][23], 0.001)
}

func TestTimeSeriesParser_AveragesYears(t *testing.T) {
	input := `time,cloud_cover
2021-07-01T12:00,20
2022-07-01T12:00,40
2023-07-01T12:00,90`

	parser := &TimeSeriesParser{}
	record, err := parser.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, record, 1)
	assert.InDelta(t, 50, record[181][12], 0.001)
}

func TestTimeSeriesParser_TimestampLayouts(t *testing.T) {
	input := `time,cloud_cover
2023-03-01T08:00:00Z,10
2023-03-01 09:00:00,20
2023-03-01 10:00,30`

	parser := &TimeSeriesParser{}
	record, err := parser.Parse(strings.NewReader(input))

	require.NoError(t, err)
	day := record[59]
	assert.InDelta(t, 10, day[8], 0.001)
	assert.InDelta(t, 20, day[9], 0.001)
	assert.InDelta(t, 30, day[10], 0.001)
}

func TestTimeSeriesParser_InvalidHeader(t *testing.T) {
	input := `timestamp,cloud_cover
2023-01-01T00:00,10`

	parser := &TimeSeriesParser{}
	_, err := parser.Parse(strings.NewReader(input))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "time")
}

func TestTimeSeriesParser_SampleFile(t *testing.T) {
	f, err := os.Open("../../testdata/cloud_cover_sample.csv")
	require.NoError(t, err)
	defer f.Close()

	parser := &TimeSeriesParser{}
	record, err := parser.Parse(f)

	require.NoError(t, err)
	// June 22 maps to the same reference day in every year, leap years
	// included. February 29 is dropped.
	require.Len(t, record, 1)
	day := record[172]
	assert.InDelta(t, (20+60+80)/3.0, day[10], 0.001)
	assert.InDelta(t, 40, day[11], 0.001, "blank values are skipped")
}
