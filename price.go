package strompris

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// HourlyPrice is one hour of spot price data.
//
// Prices are fetched from ENTSO-E in euro and converted by
// HvaKosterStrømmen using the latest exchange rate from Norges Bank, so
// they may differ slightly from official NOK prices. VAT is not included.
type HourlyPrice struct {
	NOKPerKWh decimal.Decimal
	EURPerKWh decimal.Decimal
	// EXR is the EUR to NOK exchange rate used for the conversion
	EXR decimal.Decimal
	// TimeStart carries the UTC offset reported by the upstream
	TimeStart time.Time
	// TimeEnd is exclusive
	TimeEnd time.Time
}

// Duration returns the length of the price interval.
func (p HourlyPrice) Duration() time.Duration {
	return p.TimeEnd.Sub(p.TimeStart)
}

// Contains reports whether t falls within [TimeStart, TimeEnd).
func (p HourlyPrice) Contains(t time.Time) bool {
	return !t.Before(p.TimeStart) && t.Before(p.TimeEnd)
}

// Compare orders prices by start time.
func (p HourlyPrice) Compare(other HourlyPrice) int {
	return p.TimeStart.Compare(other.TimeStart)
}

// Equal reports whether p and other hold the same amounts and the same
// instants with the same UTC offsets.
func (p HourlyPrice) Equal(other HourlyPrice) bool {
	return p.NOKPerKWh.Equal(other.NOKPerKWh) &&
		p.EURPerKWh.Equal(other.EURPerKWh) &&
		p.EXR.Equal(other.EXR) &&
		sameInstant(p.TimeStart, other.TimeStart) &&
		sameInstant(p.TimeEnd, other.TimeEnd)
}

func sameInstant(a, b time.Time) bool {
	_, offA := a.Zone()
	_, offB := b.Zone()
	return a.Equal(b) && offA == offB
}

// rawPrice mirrors one element of the upstream JSON array
type rawPrice struct {
	NOKPerKWh decimal.NullDecimal `json:"NOK_per_kWh"`
	EURPerKWh decimal.NullDecimal `json:"EUR_per_kWh"`
	EXR       decimal.NullDecimal `json:"EXR"`
	TimeStart *time.Time          `json:"time_start"`
	TimeEnd   *time.Time          `json:"time_end"`
}

var errMalformedRecord = errors.New("malformed price record")

// Decode turns an upstream response into hourly prices. Records are
// returned in the order the upstream sent them.
func Decode(statusCode int, body []byte) ([]HourlyPrice, error) {
	if statusCode < 200 || statusCode > 299 {
		return nil, classifyStatus(statusCode)
	}

	var raw []rawPrice
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&raw); err != nil {
		return nil, newDecodeError(err)
	}
	if dec.More() {
		return nil, newDecodeError(errors.New("unexpected data after price array"))
	}
	if raw == nil {
		return nil, newDecodeError(errors.New("response is not a price array"))
	}

	prices := make([]HourlyPrice, 0, len(raw))
	for i, r := range raw {
		p, err := r.toHourlyPrice()
		if err != nil {
			return nil, newDecodeError(fmt.Errorf("record %d: %w", i, err))
		}
		prices = append(prices, p)
	}
	return prices, nil
}

func (r rawPrice) toHourlyPrice() (HourlyPrice, error) {
	switch {
	case !r.NOKPerKWh.Valid:
		return HourlyPrice{}, fmt.Errorf("%w: missing NOK_per_kWh", errMalformedRecord)
	case r.TimeStart == nil:
		return HourlyPrice{}, fmt.Errorf("%w: missing time_start", errMalformedRecord)
	case r.TimeEnd == nil:
		return HourlyPrice{}, fmt.Errorf("%w: missing time_end", errMalformedRecord)
	case !r.TimeEnd.After(*r.TimeStart):
		return HourlyPrice{}, fmt.Errorf("%w: time_end %s is not after time_start %s",
			errMalformedRecord, r.TimeEnd.Format(time.RFC3339), r.TimeStart.Format(time.RFC3339))
	}
	return HourlyPrice{
		NOKPerKWh: r.NOKPerKWh.Decimal,
		EURPerKWh: r.EURPerKWh.Decimal,
		EXR:       r.EXR.Decimal,
		TimeStart: *r.TimeStart,
		TimeEnd:   *r.TimeEnd,
	}, nil
}
