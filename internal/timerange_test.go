package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	testCases := []struct {
		in    string
		start TimeOfDay
		end   TimeOfDay
	}{
		{in: "7-9pm", start: TimeOfDay{Hour: 19}, end: TimeOfDay{Hour: 21}},
		{in: "7pm-9pm", start: TimeOfDay{Hour: 19}, end: TimeOfDay{Hour: 21}},
		{in: "10am-12pm", start: TimeOfDay{Hour: 10}, end: TimeOfDay{Hour: 12}},
		{in: "11am-1pm", start: TimeOfDay{Hour: 11}, end: TimeOfDay{Hour: 13}},
		{in: "9-11am", start: TimeOfDay{Hour: 9}, end: TimeOfDay{Hour: 11}},
		{in: " 7 - 9 PM ", start: TimeOfDay{Hour: 19}, end: TimeOfDay{Hour: 21}},
		{in: "6:30-8:45pm", start: TimeOfDay{Hour: 18, Minute: 30}, end: TimeOfDay{Hour: 20, Minute: 45}},
		{in: "12am-1am", start: TimeOfDay{Hour: 0}, end: TimeOfDay{Hour: 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			r, err := ParseTimeRange(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.start, r.Start)
			assert.Equal(t, tc.end, r.End)
		})
	}
}

func TestParseTimeRange_Malformed(t *testing.T) {
	for _, in := range []string{
		"banana",
		"",
		"7pm",
		"7-9",
		"7-8-9pm",
		"13-14pm",
		"0-1pm",
		"7:3-9pm",
		"7:60-9pm",
		"+7-9pm",
		"seven-nine pm",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTimeRange(in)
			assert.ErrorIs(t, err, ErrMalformedTimeRange)
		})
	}
}

func TestParseTimeRangeOrDefault(t *testing.T) {
	r, err := ParseTimeRangeOrDefault("banana")
	assert.ErrorIs(t, err, ErrMalformedTimeRange)
	assert.Equal(t, DefaultTimeRange, r)
	assert.Equal(t, "19:00-21:00", r.String())

	r, err = ParseTimeRangeOrDefault("6-8pm")
	require.NoError(t, err)
	assert.Equal(t, "18:00-20:00", r.String())
}

func TestTimeRange_On(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	d := NewDate(2026, time.March, 1)

	start, end := TimeRange{Start: TimeOfDay{Hour: 19}, End: TimeOfDay{Hour: 21}}.On(d, ny)
	assert.Equal(t, time.Date(2026, time.March, 1, 19, 0, 0, 0, ny), start)
	assert.Equal(t, time.Date(2026, time.March, 1, 21, 0, 0, 0, ny), end)

	start, end = TimeRange{Start: TimeOfDay{Hour: 23}, End: TimeOfDay{Hour: 1}}.On(d, ny)
	assert.Equal(t, time.Date(2026, time.March, 1, 23, 0, 0, 0, ny), start)
	assert.Equal(t, time.Date(2026, time.March, 2, 1, 0, 0, 0, ny), end)
}

func TestTimeRange_Overnight(t *testing.T) {
	for in, overnight := range map[string]bool{
		"7-9pm":       false,
		"11am-1pm":    false,
		"11-1pm":      true,
		"11pm-1am":    true,
		"7pm-7pm":     true,
		"7:30-8pm":    false,
		"8:15-8:10pm": true,
	} {
		r, err := ParseTimeRange(in)
		require.NoError(t, err, in)
		assert.Equal(t, overnight, r.Overnight(), in)
	}
}
