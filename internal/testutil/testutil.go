package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// Record is one element of a price document as served by the upstream
type Record struct {
	NOKPerKWh float64 `json:"NOK_per_kWh"`
	EURPerKWh float64 `json:"EUR_per_kWh"`
	EXR       float64 `json:"EXR"`
	TimeStart string  `json:"time_start"`
	TimeEnd   string  `json:"time_end"`
}

// Records returns n consecutive hourly records starting at start. Prices
// are deterministic: hour i costs 0.5 + i/100 NOK.
func Records(start time.Time, n int) []Record {
	const exr = 11.5
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		nok := 0.5 + float64(i)/100
		from := start.Add(time.Duration(i) * time.Hour)
		records = append(records, Record{
			NOKPerKWh: nok,
			EURPerKWh: nok / exr,
			EXR:       exr,
			TimeStart: from.Format(time.RFC3339),
			TimeEnd:   from.Add(time.Hour).Format(time.RFC3339),
		})
	}
	return records
}

// DayPayload returns the JSON body for n hours starting at start
func DayPayload(t testing.TB, start time.Time, n int) []byte {
	t.Helper()
	body, err := json.Marshal(Records(start, n))
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return body
}

// Server is a fake price API that counts the requests it receives
type Server struct {
	*httptest.Server
	hits atomic.Int64
}

// Hits returns the number of requests served so far
func (s *Server) Hits() int {
	return int(s.hits.Load())
}

// NewServer starts a fake price API that replies with status and body
// for every request. It is closed when the test ends.
func NewServer(t testing.TB, status int, body []byte) *Server {
	t.Helper()
	return NewServerFunc(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(body)
	})
}

// NewServerFunc starts a fake price API backed by handler.
func NewServerFunc(t testing.TB, handler http.HandlerFunc) *Server {
	t.Helper()
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// Oslo returns the Europe/Oslo location or fails the test
func Oslo(t testing.TB) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Oslo")
	if err != nil {
		t.Fatalf("failed to load Europe/Oslo: %v", err)
	}
	return loc
}

// PricePath returns the request path the client is expected to use
func PricePath(year, month, day int, region string) string {
	return fmt.Sprintf("/%04d/%02d-%02d_%s.json", year, month, day, region)
}
