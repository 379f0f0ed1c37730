package internal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedTimeRange = errors.New("malformed time range")

type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// DefaultTimeRange is used whenever a meeting time can't be parsed.
var DefaultTimeRange = TimeRange{
	Start: TimeOfDay{Hour: 19},
	End:   TimeOfDay{Hour: 21},
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Overnight reports whether the range ends at or before its start on the
// clock, i.e. on the following day.
func (r TimeRange) Overnight() bool {
	return r.End.Hour*60+r.End.Minute <= r.Start.Hour*60+r.Start.Minute
}

// On materialises the range on date d in loc. A range ending at or before its
// start ends on the following day.
func (r TimeRange) On(d Date, loc *time.Location) (start, end time.Time) {
	start = d.On(r.Start, loc)
	end = d.On(r.End, loc)
	if !end.After(start) {
		end = d.AddDate(0, 0, 1).On(r.End, loc)
	}
	return start, end
}

// ParseTimeRange parses ranges like "7-9pm", "7pm-9pm" or "10am-12pm".
//
// When only the end carries a meridiem it also applies to the start, so
// "7-9pm" means 19:00-21:00. Ranges with both meridiems are taken literally.
func ParseTimeRange(s string) (TimeRange, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, "-") != 1 {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrMalformedTimeRange, s)
	}
	startStr, endStr, _ := strings.Cut(strings.ToLower(s), "-")
	startStr = strings.TrimSpace(startStr)
	endStr = strings.TrimSpace(endStr)

	if m := meridiem(endStr); m != "" && meridiem(startStr) == "" {
		startStr += m
	}

	start, err := parseTimeOfDay(startStr)
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrMalformedTimeRange, s)
	}
	end, err := parseTimeOfDay(endStr)
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrMalformedTimeRange, s)
	}
	return TimeRange{Start: start, End: end}, nil
}

// ParseTimeRangeOrDefault never fails, the parse error is returned alongside
// DefaultTimeRange so callers can warn about it.
func ParseTimeRangeOrDefault(s string) (TimeRange, error) {
	r, err := ParseTimeRange(s)
	if err != nil {
		return DefaultTimeRange, err
	}
	return r, nil
}

func meridiem(s string) string {
	for _, m := range []string{"am", "pm"} {
		if strings.HasSuffix(s, m) {
			return m
		}
	}
	return ""
}

// parseTimeOfDay parses "H<am|pm>" or "H:MM<am|pm>", s must be lower case.
func parseTimeOfDay(s string) (TimeOfDay, error) {
	m := meridiem(s)
	if m == "" {
		return TimeOfDay{}, errors.New("missing am/pm")
	}
	clock := strings.TrimSpace(strings.TrimSuffix(s, m))
	hourStr, minuteStr, hasMinute := strings.Cut(clock, ":")

	hour, err := atoi(hourStr, 1, 2)
	if err != nil || hour < 1 || hour > 12 {
		return TimeOfDay{}, fmt.Errorf("invalid hour %q", hourStr)
	}
	var minute int
	if hasMinute {
		minute, err = atoi(minuteStr, 2, 2)
		if err != nil || minute > 59 {
			return TimeOfDay{}, fmt.Errorf("invalid minute %q", minuteStr)
		}
	}

	hour %= 12
	if m == "pm" {
		hour += 12
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func atoi(s string, minLen, maxLen int) (int, error) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, strconv.ErrSyntax
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}
