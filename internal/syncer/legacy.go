package syncer

import "strings"

// legacyMatch recognises events created before the sync id was stored on
// them. It only considers events with the meeting summary, and is approximate:
// an address contained in the event location is enough.
//
// TODO: remove once no calendar holds events without a sync id.
func legacyMatch(summary string, m Meeting, e *Event) bool {
	if e.Summary != summary {
		return false
	}
	switch {
	case e.Location == m.CalendarLocation():
		return true
	case e.Location == m.Location:
		return true
	case m.Address != "" && strings.Contains(e.Location, m.Address):
		return true
	}
	return false
}
