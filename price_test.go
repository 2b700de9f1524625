package strompris

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strompris/internal/testutil"
)

func TestDecode_FullDay(t *testing.T) {
	oslo := testutil.Oslo(t)
	start := time.Date(2024, 7, 14, 0, 0, 0, 0, oslo)
	records := testutil.Records(start, 24)

	prices, err := Decode(http.StatusOK, testutil.DayPayload(t, start, 24))
	require.NoError(t, err)
	require.Len(t, prices, 24)

	for i, p := range prices {
		want := records[i]
		assert.True(t, decimal.NewFromFloat(want.NOKPerKWh).Equal(p.NOKPerKWh), "hour %d NOK = %s", i, p.NOKPerKWh)
		assert.True(t, decimal.NewFromFloat(want.EURPerKWh).Equal(p.EURPerKWh), "hour %d EUR = %s", i, p.EURPerKWh)
		assert.True(t, decimal.NewFromFloat(want.EXR).Equal(p.EXR), "hour %d EXR = %s", i, p.EXR)
		assert.Equal(t, want.TimeStart, p.TimeStart.Format(time.RFC3339))
		assert.Equal(t, want.TimeEnd, p.TimeEnd.Format(time.RFC3339))
		assert.Equal(t, time.Hour, p.Duration())
	}

	_, offset := prices[0].TimeStart.Zone()
	assert.Equal(t, 2*60*60, offset, "upstream offset must be preserved")
	assert.True(t, prices[0].TimeStart.Equal(time.Date(2024, 7, 13, 22, 0, 0, 0, time.UTC)))
}

func TestDecode_PreservesUpstreamOrder(t *testing.T) {
	body := []byte(`[
		{"NOK_per_kWh": 0.9, "EUR_per_kWh": 0.08, "EXR": 11.25, "time_start": "2024-07-14T05:00:00+02:00", "time_end": "2024-07-14T06:00:00+02:00"},
		{"NOK_per_kWh": 0.1, "EUR_per_kWh": 0.01, "EXR": 11.25, "time_start": "2024-07-14T01:00:00+02:00", "time_end": "2024-07-14T02:00:00+02:00"}
	]`)

	prices, err := Decode(http.StatusOK, body)
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "0.9", prices[0].NOKPerKWh.String())
	assert.Equal(t, "0.1", prices[1].NOKPerKWh.String())
	assert.Equal(t, 1, prices[0].Compare(prices[1]))
}

func TestDecode_ExactDecimals(t *testing.T) {
	body := []byte(`[{"NOK_per_kWh": 1.23456, "EUR_per_kWh": 0.10735, "EXR": 11.5, "time_start": "2024-01-31T00:00:00+01:00", "time_end": "2024-01-31T01:00:00+01:00"}]`)

	prices, err := Decode(http.StatusOK, body)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, "1.23456", prices[0].NOKPerKWh.String())
	assert.Equal(t, "0.10735", prices[0].EURPerKWh.String())
	assert.Equal(t, "11.5", prices[0].EXR.String())
}

func TestDecode_EmptyArray(t *testing.T) {
	prices, err := Decode(http.StatusOK, []byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"truncated", `[{"NOK_per_kWh": 0.5, "time_start": "2024-07-14T00:00:00+02:00"`},
		{"object instead of array", `{"NOK_per_kWh": 0.5}`},
		{"null", `null`},
		{"empty body", ``},
		{"trailing data", `[] []`},
		{"price as bool", `[{"NOK_per_kWh": true, "time_start": "2024-07-14T00:00:00+02:00", "time_end": "2024-07-14T01:00:00+02:00"}]`},
		{"bad timestamp", `[{"NOK_per_kWh": 0.5, "time_start": "14.07.2024 00:00", "time_end": "2024-07-14T01:00:00+02:00"}]`},
		{"missing price", `[{"EUR_per_kWh": 0.05, "time_start": "2024-07-14T00:00:00+02:00", "time_end": "2024-07-14T01:00:00+02:00"}]`},
		{"null price", `[{"NOK_per_kWh": null, "time_start": "2024-07-14T00:00:00+02:00", "time_end": "2024-07-14T01:00:00+02:00"}]`},
		{"missing start", `[{"NOK_per_kWh": 0.5, "time_end": "2024-07-14T01:00:00+02:00"}]`},
		{"missing end", `[{"NOK_per_kWh": 0.5, "time_start": "2024-07-14T00:00:00+02:00"}]`},
		{"end before start", `[{"NOK_per_kWh": 0.5, "time_start": "2024-07-14T01:00:00+02:00", "time_end": "2024-07-14T00:00:00+02:00"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prices, err := Decode(http.StatusOK, []byte(tt.body))
			require.Error(t, err)
			assert.Nil(t, prices)
			assert.True(t, IsDecode(err), "expected decode error, got %v", err)
			assert.False(t, IsValidation(err))
			assert.False(t, IsTransport(err))
		})
	}
}

func TestDecode_Status(t *testing.T) {
	tests := []struct {
		status    int
		notFound  bool
		retryable bool
	}{
		{http.StatusNotFound, true, false},
		{http.StatusTooManyRequests, false, true},
		{http.StatusInternalServerError, false, true},
		{http.StatusBadGateway, false, true},
		{http.StatusBadRequest, false, false},
		{http.StatusForbidden, false, false},
		{http.StatusMovedPermanently, false, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			_, err := Decode(tt.status, []byte(`[]`))
			require.Error(t, err)
			assert.True(t, IsTransport(err))
			assert.Equal(t, tt.notFound, IsNotFound(err))

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.status, e.StatusCode)
			assert.Equal(t, tt.retryable, e.Retryable)
		})
	}
}

func TestHourlyPrice_Contains(t *testing.T) {
	start := time.Date(2024, 7, 14, 10, 0, 0, 0, time.UTC)
	p := HourlyPrice{TimeStart: start, TimeEnd: start.Add(time.Hour)}

	assert.True(t, p.Contains(start))
	assert.True(t, p.Contains(start.Add(59*time.Minute)))
	assert.False(t, p.Contains(start.Add(time.Hour)))
	assert.False(t, p.Contains(start.Add(-time.Second)))
}

func TestHourlyPrice_Equal(t *testing.T) {
	start := time.Date(2024, 7, 14, 0, 0, 0, 0, time.FixedZone("", 2*60*60))
	a := HourlyPrice{
		NOKPerKWh: decimal.RequireFromString("0.50"),
		EURPerKWh: decimal.RequireFromString("0.04"),
		EXR:       decimal.RequireFromString("11.5"),
		TimeStart: start,
		TimeEnd:   start.Add(time.Hour),
	}
	b := a
	b.NOKPerKWh = decimal.RequireFromString("0.5")
	assert.True(t, a.Equal(b))

	c := a
	c.TimeStart = a.TimeStart.UTC()
	assert.False(t, a.Equal(c), "different offset")

	d := a
	d.EXR = decimal.RequireFromString("11.6")
	assert.False(t, a.Equal(d))
}
