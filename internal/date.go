package internal

import (
	"errors"
	"fmt"
	"time"
)

// DateFormat is the canonical form of a meeting date in the ledger.
const DateFormat = "01/02/2006"

// ISODateFormat is used for command line flags.
const ISODateFormat = "2006-01-02"

var ErrMalformedDate = errors.New("malformed date")

// Ledger dates are accepted with a four or a two digit year, with or without
// zero padding on month and day.
var dateLayouts = []string{"1/2/2006", "1/2/06"}

type Date struct {
	time.Time
}

func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return NewDateFromTime(time.Now().In(loc))
}

func NewDateFromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// NewDate returns the date at midnight UTC. Dates carry no zone of their own,
// UTC only keeps comparisons stable.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) AddDate(years, months, days int) Date {
	return NewDateFromTime(d.Time.AddDate(years, months, days))
}

// ParseDate parses a ledger date.
func ParseDate(value string) (Date, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return NewDateFromTime(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrMalformedDate, value)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// On combines the date with a wall clock time in loc.
func (d Date) On(t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// Window returns the span searched for events of this date: the whole UTC day
// [00:00:00, 23:59:59]. When loc is given the span is widened to also cover
// the local day, otherwise evening meetings west of UTC start on the next UTC
// day and would never be found.
func (d Date) Window(loc *time.Location) (from, to time.Time) {
	from = d.Time
	to = from.Add(24*time.Hour - time.Second)
	if loc == nil {
		return from, to
	}
	localFrom := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc).UTC()
	localTo := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, loc).UTC()
	if localFrom.Before(from) {
		from = localFrom
	}
	if localTo.After(to) {
		to = localTo
	}
	return from, to
}

// Set implements flag.Value, accepting ISO or ledger dates.
func (d *Date) Set(v string) error {
	if t, err := time.Parse(ISODateFormat, v); err == nil {
		*d = NewDateFromTime(t)
		return nil
	}
	parsed, err := ParseDate(v)
	if err == nil {
		*d = parsed
	}
	return err
}

func (d Date) Type() string {
	return "date"
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(ISODateFormat)
}
