package strompris

import "context"

// Transport performs the HTTP GET for a price document. Implementations
// return the HTTP status and the full response body. A non-nil error
// means no response was received.
type Transport interface {
	Get(ctx context.Context, url string) (statusCode int, body []byte, err error)
}

// TransportFunc adapts a function to the Transport interface
type TransportFunc func(ctx context.Context, url string) (int, []byte, error)

// Get implements Transport
func (f TransportFunc) Get(ctx context.Context, url string) (int, []byte, error) {
	return f(ctx, url)
}

// Result is the outcome of an asynchronous price request. It is sent
// exactly once on the channel returned by GetPricesAsync.
type Result struct {
	// Prices is the decoded price list in upstream order
	Prices []HourlyPrice

	// Err contains any error that occurred during the request.
	// If Err is not nil, Prices should be considered invalid.
	Err error
}
