package strompris

import (
	"fmt"
	"net/url"
)

// DefaultBaseURL is the root of the Strømpris price API.
const DefaultBaseURL = "https://www.hvakosterstrommen.no/api/v1/prices/"

// BuildURL returns the price document URL for date and region below base,
// following the template {base}/{YYYY}/{MM}-{DD}_{REGION}.json.
func BuildURL(base *url.URL, date Date, region PriceRegion) *url.URL {
	return base.JoinPath(
		fmt.Sprintf("%04d", date.Year()),
		fmt.Sprintf("%02d-%02d_%s.json", int(date.Month()), date.Day(), region.Code()),
	)
}

// parseBaseURL requires https unless allowHTTP is set
func parseBaseURL(raw string, allowHTTP bool) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	switch {
	case u.Scheme == "https":
	case u.Scheme == "http" && allowHTTP:
	case u.Scheme == "http":
		return nil, fmt.Errorf("invalid base URL %q: plain http requires WithInsecureHTTP", raw)
	default:
		return nil, fmt.Errorf("invalid base URL %q: scheme must be https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", raw)
	}
	return u, nil
}
