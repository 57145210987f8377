package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the layout used to persist and display dates.
const DateFormat = "2006-01-02"

// readDateFormat also accepts single-digit months and days.
const readDateFormat = "2006-1-2"

// Date is a calendar date with day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date, so NewDate(2025, 2, 31) is March 3rd.
func NewDate(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, d}
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date { return NewDate(t.Date()) }

// ParseDate parses "2006-01-02" (single-digit parts allowed). Full RFC 3339
// timestamps are also accepted and truncated to their UTC date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(readDateFormat, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DateOf(t.UTC()), nil
	}
	return Date{}, fmt.Errorf("invalid date %q, want format %q", s, DateFormat)
}

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

func (d Date) String() string { return d.time().Format(DateFormat) }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time { return d.time() }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool  { return d.time().After(x.time()) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after x.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// Add returns d shifted by the given number of days.
func (d Date) Add(days int) Date { return NewDate(d.y, d.m, d.d+days) }

// AddMonth returns d shifted by the given number of months. Overflowing days
// roll into the following month.
func (d Date) AddMonth(months int) Date { return NewDate(d.y, d.m+time.Month(months), d.d) }

// AddYear returns d shifted by the given number of years.
func (d Date) AddYear(years int) Date { return NewDate(d.y+years, d.m, d.d) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)
