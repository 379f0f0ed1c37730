package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("03/01/2026", "Park", "123 Main St")
	assert.Equal(t, fp, Fingerprint("03/01/2026", "Park", "123 Main St"))
	assert.Len(t, fp, 32)

	// md5("03/01/2026_Park_123 Main St"), as stamped on existing events.
	assert.Equal(t, "0ce7393def01a23769e69e08cc81be7a", fp)

	assert.NotEqual(t, fp, Fingerprint("03/02/2026", "Park", "123 Main St"))
	assert.NotEqual(t, fp, Fingerprint("03/01/2026", "Library", "123 Main St"))
	assert.NotEqual(t, fp, Fingerprint("03/01/2026", "Park", "124 Main St"))
	assert.NotEqual(t, fp, Fingerprint("03/01/2026", "Park", ""))
}

func TestFingerprint_KnownDigest(t *testing.T) {
	assert.Equal(t, "8d28cddc274233853a82eae1c6c7f0b3", Fingerprint("a", "b", "c"))
	// time is not part of the identity
	assert.Equal(t, Fingerprint("a", "b", "c"), Meeting{Date: "a", Location: "b", Address: "c", Time: "7-9pm"}.Fingerprint())
}

func TestMeeting_CalendarLocation(t *testing.T) {
	assert.Equal(t, "Park, 123 Main St", Meeting{Location: "Park", Address: "123 Main St"}.CalendarLocation())
	assert.Equal(t, "Park", Meeting{Location: "Park"}.CalendarLocation())
}

func TestMeeting_Valid(t *testing.T) {
	assert.True(t, Meeting{Date: "03/01/2026", Location: "Park"}.Valid())
	assert.False(t, Meeting{Date: "03/01/2026"}.Valid())
	assert.False(t, Meeting{Location: "Park"}.Valid())
	assert.False(t, Meeting{Date: " ", Location: "Park"}.Valid())
}

func TestMeetingFromRow(t *testing.T) {
	m := Meeting{Date: "03/01/2026", Location: "Park", Address: "123 Main St", Time: "7-9pm"}
	assert.Equal(t, m, MeetingFromRow(m.Row()))
	assert.Equal(t, Meeting{Date: "03/01/2026", Location: "Park"}, MeetingFromRow([]string{"03/01/2026", "Park"}))
}
