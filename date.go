package strompris

import (
	"cmp"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var minDate = MustDate(2021, 12, 1)

// MinDate returns the earliest day for which HvaKosterStrømmen publishes prices.
func MinDate() Date { return minDate }

// Date is a validated calendar date. The zero value is not a valid date;
// use FromYMD, ParseDate or DateOf to build one.
type Date struct {
	year  int
	month time.Month
	day   int
}

// FromYMD returns the date for the given year, month and day. It fails
// with a validation error wrapping ErrInvalidDate when the triple is not
// a date in the Gregorian calendar, or the year is outside 1..9999.
func FromYMD(year, month, day int) (Date, error) {
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return Date{}, invalidDate(year, month, day)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Date{}, invalidDate(year, month, day)
	}
	return Date{year: year, month: time.Month(month), day: day}, nil
}

// MustDate is like FromYMD but panics on an invalid date. It is meant for
// package-level constants.
func MustDate(year, month, day int) Date {
	d, err := FromYMD(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, &Error{
			Kind:    KindValidation,
			Message: fmt.Sprintf("cannot parse date %q", s),
			Cause:   fmt.Errorf("%w: %v", ErrInvalidDate, err),
		}
	}
	return FromYMD(t.Year(), int(t.Month()), t.Day())
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) (Date, error) {
	return FromYMD(t.Year(), int(t.Month()), t.Day())
}

// Today returns the current date in loc.
func Today(loc *time.Location) Date {
	return dateIn(time.Now(), loc)
}

func dateIn(t time.Time, loc *time.Location) Date {
	t = t.In(loc)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

func invalidDate(year, month, day int) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf("%04d-%02d-%02d is not a valid date", year, month, day),
		Cause:   ErrInvalidDate,
	}
}

func (d Date) Year() int { return d.year }

func (d Date) Month() time.Month { return d.month }

func (d Date) Day() int { return d.day }

// IsZero reports whether d is the zero value, which is never a valid date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight at the start of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// AddDays returns d shifted by n days. The result is normalized, so
// adding one day to 2024-02-29 yields 2024-03-01.
func (d Date) AddDays(n int) Date {
	return dateIn(d.Time(time.UTC).AddDate(0, 0, n), time.UTC)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to
// or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmp.Compare(d.year, other.year)
	case d.month != other.month:
		return cmp.Compare(d.month, other.month)
	default:
		return cmp.Compare(d.day, other.day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return nil, invalidDate(0, 0, 0)
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
