package strompris

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind represents the category of failure reported by the client
type ErrorKind string

const (
	// KindValidation indicates the request was rejected before any network call
	KindValidation ErrorKind = "validation"
	// KindTransport indicates a network failure or a non-success HTTP status
	KindTransport ErrorKind = "transport"
	// KindDecode indicates a success response whose body could not be decoded
	KindDecode ErrorKind = "decode"
)

// Sentinel causes wrapped by *Error. Use errors.Is to test for them.
var (
	// ErrInvalidDate indicates a year, month, day triple that is not a calendar date.
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrDateTooEarly indicates a date before MinDate.
	ErrDateTooEarly = errors.New("date is before the earliest published day")

	// ErrDateInFuture indicates a date too far ahead to have been published.
	ErrDateInFuture = errors.New("date is too far in the future")

	// ErrInvalidRegion indicates a value outside the PriceRegion enumeration.
	ErrInvalidRegion = errors.New("unknown price region")

	// ErrNoData indicates the upstream has no prices for the requested day (HTTP 404).
	ErrNoData = errors.New("no price data published for date")
)

// Error is the single error type returned by this package
type Error struct {
	Kind       ErrorKind
	Retryable  bool
	StatusCode int
	Date       Date
	Region     PriceRegion
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if !e.Date.IsZero() {
		msg = fmt.Sprintf("%s (date %s)", msg, e.Date)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

func newValidationError(date Date, cause error) *Error {
	return &Error{
		Kind:    KindValidation,
		Date:    date,
		Message: "request rejected",
		Cause:   cause,
	}
}

func newNetworkError(date Date, region PriceRegion, cause error) *Error {
	return &Error{
		Kind:      KindTransport,
		Retryable: true,
		Date:      date,
		Region:    region,
		Message:   "network request failed",
		Cause:     cause,
	}
}

func newDecodeError(cause error) *Error {
	return &Error{
		Kind:    KindDecode,
		Message: "failed to decode price response",
		Cause:   cause,
	}
}

// classifyStatus turns a non-success HTTP status into a transport error
func classifyStatus(statusCode int) *Error {
	e := &Error{
		Kind:       KindTransport,
		StatusCode: statusCode,
	}
	switch {
	case statusCode == http.StatusNotFound:
		e.Message = "upstream has no data"
		e.Cause = ErrNoData
	case statusCode == http.StatusTooManyRequests:
		e.Retryable = true
		e.Message = "rate limit exceeded"
	case statusCode >= 500:
		e.Retryable = true
		e.Message = "server returned an error"
	case statusCode >= 400:
		e.Message = fmt.Sprintf("client error: HTTP %d", statusCode)
	default:
		e.Message = fmt.Sprintf("unexpected status code: %d", statusCode)
	}
	return e
}

// withRequest stamps the request context onto an error produced by the decoder
func (e *Error) withRequest(date Date, region PriceRegion) *Error {
	e.Date = date
	e.Region = region
	return e
}

func kindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindValidation
}

// IsTransport reports whether err is a transport failure
func IsTransport(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindTransport
}

// IsDecode reports whether err is a decode failure
func IsDecode(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindDecode
}

// IsNotFound reports whether the upstream had no data for the requested day
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoData)
}
