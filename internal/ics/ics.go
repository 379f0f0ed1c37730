// Package ics exports meetings as an iCalendar feed.
package ics

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	log "github.com/sirupsen/logrus"

	"github.com/guilherme-santos/meetsync/internal"
)

const (
	ProductID = "-//meetsync//meetsync//EN"
	uidDomain = "meetsync"

	propCalendarName = "X-WR-CALNAME"
)

// Encode writes cal and one VEVENT per valid meeting to w. Events carry the
// same fields and reminders as the ones created on the remote calendar, and
// their UID derives from the meeting fingerprint.
func Encode(w io.Writer, cal *internal.Calendar, meetings []internal.Meeting, now time.Time) error {
	feed := ical.NewCalendar()
	feed.Props.SetText(ical.PropVersion, "2.0")
	feed.Props.SetText(ical.PropProductID, ProductID)
	if cal.Name != "" {
		feed.Props.SetText(propCalendarName, cal.Name)
	}

	seen := make(map[string]struct{})
	for _, m := range meetings {
		event, err := newEvent(cal, m, now)
		if err != nil {
			log.WithField("meeting", m.String()).Warnf("ics: skipping meeting: %v", err)
			continue
		}
		uid := event.Props.Get(ical.PropUID).Value
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		feed.Children = append(feed.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(feed); err != nil {
		return fmt.Errorf("ics: encoding calendar: %w", err)
	}
	return nil
}

func newEvent(cal *internal.Calendar, m internal.Meeting, now time.Time) (*ical.Event, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("missing date or location")
	}
	date, err := internal.ParseDate(m.Date)
	if err != nil {
		return nil, err
	}
	tr, _ := internal.ParseTimeRangeOrDefault(m.Time)
	start, end := tr.On(date, cal.Location())

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, m.Fingerprint()+"@"+uidDomain)
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, end)
	event.Props.SetText(ical.PropSummary, cal.Summary)
	event.Props.SetText(ical.PropLocation, m.CalendarLocation())
	if cal.Description != "" {
		event.Props.SetText(ical.PropDescription, cal.Description)
	}

	for _, r := range internal.DefaultReminders {
		event.Children = append(event.Children, newAlarm(cal.Summary, r))
	}
	return event, nil
}

// newAlarm maps a reminder to a VALARM. Email reminders need attendees in
// iCalendar, so every alarm is a DISPLAY one.
func newAlarm(summary string, r internal.Reminder) *ical.Component {
	alarm := ical.NewComponent(ical.CompAlarm)
	alarm.Props.SetText(ical.PropAction, "DISPLAY")
	alarm.Props.SetText(ical.PropDescription, summary)

	trigger := ical.NewProp(ical.PropTrigger)
	trigger.Value = fmt.Sprintf("-PT%dM", r.Minutes)
	alarm.Props.Set(trigger)
	return alarm
}
