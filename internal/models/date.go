package models

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout is the wire format of a calendar day
const DateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day or location
type Date struct {
	d civil.Date
}

// NewDate returns the given calendar day
func NewDate(year int, month time.Month, day int) Date {
	return Date{d: civil.Date{Year: year, Month: month, Day: day}}
}

// DateOf returns the calendar day of t in t's own location
func DateOf(t time.Time) Date {
	return Date{d: civil.DateOf(t)}
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{d: d}, nil
}

// MustDate is ParseDate for literals known to be valid
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of the day
func (d Date) Time() time.Time { return d.d.In(time.UTC) }

func (d Date) IsZero() bool { return d.d.IsZero() }

func (d Date) Before(other Date) bool { return d.d.Before(other.d) }

func (d Date) After(other Date) bool { return d.d.After(other.d) }

func (d Date) Equal(other Date) bool { return d.d == other.d }

// AddDays returns the day n days later (earlier for negative n)
func (d Date) AddDays(n int) Date {
	return Date{d: d.d.AddDays(n)}
}

// DaysUntil returns the whole days from d to other; negative if other is earlier.
// Counted on the calendar, so it holds for ranges of any length.
func (d Date) DaysUntil(other Date) int {
	return other.d.DaysSince(d.d)
}

func (d Date) String() string {
	return d.d.String()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid date %s: expected a quoted YYYY-MM-DD string", data)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner for DATE columns
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}
