package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayHourParser_Parse(t *testing.T) {
	input := `day_of_year,hour,cloud_cover
172,10,25
172,11,75.5
0,12,100`

	parser := &DayHourParser{}
	record, err := parser.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, record, 2)

	summer := record[172]
	assert.InDelta(t, 25, summer[10], 0.001)
	assert.InDelta(t, 75.5, summer[11], 0.001)
	assert.Zero(t, summer[12], "unlisted hours are clear")
	assert.InDelta(t, 100, record[0][12], 0.001)
}

func TestDayHourParser_SkipsMalformedRows(t *testing.T) {
	input := `day_of_year,hour,cloud_cover
172,10,25
365,10,50
-1,10,50
172,24,50
172,x,50
172,12,cloudy
172,13`

	parser := &DayHourParser{}
	record, err := parser.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, record, 1)
	assert.InDelta(t, 25, record[172][10], 0.001)
}

func TestDayHourParser_ClampsCover(t *testing.T) {
	input := `day_of_year,hour,cloud_cover
5,8,140
5,9,-3`

	parser := &DayHourParser{}
	record, err := parser.Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, 100.0, record[5][8])
	assert.Equal(t, 0.0, record[5][9])
}

func TestDayHourParser_InvalidHeader(t *testing.T) {
	input := `day,hour,cloud_cover
172,10,25`

	parser := &DayHourParser{}
	_, err := parser.Parse(strings.NewReader(input))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "day_of_year")
}

func TestDayHourParser_EmptyInput(t *testing.T) {
	parser := &DayHourParser{}
	_, err := parser.Parse(strings.NewReader(""))

	assert.Error(t, err)
}
