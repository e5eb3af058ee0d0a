package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is an immutable Solar Hijri calendar date. Every arithmetic operation
// returns a new value. The zero Date is not a valid date and reports IsZero.
type Date struct {
	year  int
	month int
	day   int
}

// New returns the Date for (year, month, day), or ErrInvalidDate when the
// triple fails IsValidDate.
func New(year, month, day int) (Date, error) {
	if !IsValidDate(year, month, day) {
		return Date{}, fmt.Errorf("%w: %d/%02d/%02d", ErrInvalidDate, year, month, day)
	}
	return Date{year: year, month: month, day: day}, nil
}

// FromTime returns the Solar Hijri date of t's calendar day in t's location.
func FromTime(t time.Time) Date {
	return GregorianToSolarHijri(t.Year(), int(t.Month()), t.Day())
}

// Today returns the Solar Hijri date of now as observed in loc. A nil loc
// means UTC.
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return FromTime(now.In(loc))
}

// Parse reads a date in the YYYY/MM/DD form. ASCII and Persian digits are
// both accepted, as is '-' as the separator.
func Parse(s string) (Date, error) {
	text := strings.TrimSpace(ToASCIINumerals(s))
	parts := strings.FieldsFunc(text, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q is not in YYYY/MM/DD form", ErrInvalidDate, s)
	}

	var fields [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
		}
		fields[i] = v
	}

	return New(fields[0], fields[1], fields[2])
}

// Year returns the Solar Hijri year.
func (d Date) Year() int { return d.year }

// Month returns the month number, 1 for Farvardin through 12 for Esfand.
func (d Date) Month() int { return d.month }

// Day returns the day of the month.
func (d Date) Day() int { return d.day }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// AddDays returns the date n days after d; negative n moves backwards.
// Month lengths and leap placement are irregular, so the arithmetic is done
// on the Gregorian side and converted back.
func (d Date) AddDays(n int) Date {
	g := d.Gregorian()
	t := time.Date(g.Year, time.Month(g.Month), g.Day+n, 12, 0, 0, 0, time.UTC)
	return FromTime(t)
}

// Gregorian returns d converted to the Gregorian calendar.
func (d Date) Gregorian() GregorianDate {
	return SolarHijriToGregorian(d.year, d.month, d.day)
}

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() time.Weekday {
	g := d.Gregorian()
	return time.Date(g.Year, time.Month(g.Month), g.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return sign(d.year - other.year)
	case d.month != other.month:
		return sign(d.month - other.month)
	default:
		return sign(d.day - other.day)
	}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// Equal reports whether d and other name the same day.
func (d Date) Equal(other Date) bool { return d == other }

// Format renders d as YYYY/MM/DD with zero-padded month and day.
func (d Date) Format() string {
	return fmt.Sprintf("%d/%02d/%02d", d.year, d.month, d.day)
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.Format()
}

// MarshalText encodes d in its YYYY/MM/DD form. The zero Date encodes as an
// empty string.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.Format()), nil
}

// UnmarshalText decodes the YYYY/MM/DD form, rejecting invalid dates with
// ErrInvalidDate. An empty string decodes to the zero Date.
func (d *Date) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
