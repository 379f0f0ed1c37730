package internal

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Header is the canonical ledger header.
var Header = []string{"date", "location", "address", "time"}

// LegacyHeader is the header used before meetings had an address.
var LegacyHeader = []string{"date", "location", "time"}

// Meeting is a single ledger record. Date, Location and Address identify it,
// Time only describes it.
type Meeting struct {
	Date     string
	Location string
	Address  string
	Time     string
}

// MeetingFromRow decodes a row in Header order. Missing trailing fields are
// left empty.
func MeetingFromRow(row []string) Meeting {
	field := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Meeting{
		Date:     field(0),
		Location: field(1),
		Address:  field(2),
		Time:     field(3),
	}
}

// Row encodes the meeting in Header order.
func (m Meeting) Row() []string {
	return []string{m.Date, m.Location, m.Address, m.Time}
}

// Valid reports whether the meeting can be synced.
func (m Meeting) Valid() bool {
	return strings.TrimSpace(m.Date) != "" && strings.TrimSpace(m.Location) != ""
}

// CalendarLocation is the location shown on the calendar event.
func (m Meeting) CalendarLocation() string {
	if m.Address != "" {
		return m.Location + ", " + m.Address
	}
	return m.Location
}

func (m Meeting) Fingerprint() string {
	return Fingerprint(m.Date, m.Location, m.Address)
}

func (m Meeting) String() string {
	return m.Date + " at " + m.Location
}

// Fingerprint identifies a meeting across runs. It's the hex MD5 of
// "{date}_{location}_{address}", the same digest already stored on events
// synced by earlier tooling, so it must not change.
func Fingerprint(date, location, address string) string {
	sum := md5.Sum([]byte(date + "_" + location + "_" + address))
	return hex.EncodeToString(sum[:])
}
