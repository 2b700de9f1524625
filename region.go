package strompris

import (
	"fmt"
	"strings"
)

// PriceRegion is one of the five Norwegian electricity price areas. Each
// area has its own hourly price.
type PriceRegion uint8

// The zero value is not a region.
const (
	// NO1 is Oslo / Øst-Norge
	NO1 PriceRegion = iota + 1
	// NO2 is Kristiansand / Sør-Norge
	NO2
	// NO3 is Trondheim / Midt-Norge
	NO3
	// NO4 is Tromsø / Nord-Norge
	NO4
	// NO5 is Bergen / Vest-Norge
	NO5
)

var regionInfo = map[PriceRegion]struct {
	code        string
	description string
}{
	NO1: {"NO1", "Oslo / Øst-Norge"},
	NO2: {"NO2", "Kristiansand / Sør-Norge"},
	NO3: {"NO3", "Trondheim / Midt-Norge"},
	NO4: {"NO4", "Tromsø / Nord-Norge"},
	NO5: {"NO5", "Bergen / Vest-Norge"},
}

// Regions returns every price region in code order.
func Regions() []PriceRegion {
	return []PriceRegion{NO1, NO2, NO3, NO4, NO5}
}

// ParsePriceRegion returns the region for a code such as "NO1". Matching
// ignores case and surrounding whitespace.
func ParsePriceRegion(code string) (PriceRegion, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, r := range Regions() {
		if regionInfo[r].code == code {
			return r, nil
		}
	}
	return 0, &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf("cannot parse price region %q", code),
		Cause:   ErrInvalidRegion,
	}
}

// Valid reports whether r is one of the defined regions.
func (r PriceRegion) Valid() bool {
	_, ok := regionInfo[r]
	return ok
}

// Code returns the code used in request URLs, e.g. "NO1".
func (r PriceRegion) Code() string {
	return regionInfo[r].code
}

// Description returns the human readable area name.
func (r PriceRegion) Description() string {
	return regionInfo[r].description
}

func (r PriceRegion) String() string {
	if !r.Valid() {
		return fmt.Sprintf("PriceRegion(%d)", uint8(r))
	}
	return r.Code()
}

// MarshalText implements encoding.TextMarshaler.
func (r PriceRegion) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, &Error{Kind: KindValidation, Message: r.String(), Cause: ErrInvalidRegion}
	}
	return []byte(r.Code()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *PriceRegion) UnmarshalText(text []byte) error {
	parsed, err := ParsePriceRegion(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
