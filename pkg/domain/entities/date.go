package entities

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted on-disk and on-wire date format.
const DateLayout = "2006-01-02"

// Date is an ISO calendar date (YYYY-MM-DD). Well-formed dates order
// correctly as plain strings, so comparisons are lexical.
type Date string

// ParseDate validates s and returns it as a Date
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return Date(s), nil
}

// MustParseDate is ParseDate for literals; it panics on malformed input
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf formats t as a Date
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current local date
func Today() Date {
	return DateOf(time.Now())
}

func (d Date) String() string {
	return string(d)
}

// IsZero reports whether the date is unset
func (d Date) IsZero() bool {
	return d == ""
}

// Before reports whether d is strictly earlier than other
func (d Date) Before(other Date) bool {
	return d < other
}

// After reports whether d is strictly later than other
func (d Date) After(other Date) bool {
	return d > other
}

// Time converts the date to midnight UTC. Malformed dates yield the zero time.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the date n calendar days away from d
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Next returns the following calendar day
func (d Date) Next() Date {
	return d.AddDays(1)
}

// DateRange returns every date from start to end inclusive. An inverted
// range is empty.
func DateRange(start, end Date) []Date {
	if start.Time().IsZero() || end.Time().IsZero() {
		return nil
	}
	var dates []Date
	for d := start; !d.After(end); d = d.Next() {
		dates = append(dates, d)
	}
	return dates
}
