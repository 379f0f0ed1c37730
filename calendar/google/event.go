package google

import (
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/guilherme-santos/meetsync/internal"
)

func newEvent(event *calendar.Event) *internal.Event {
	e := &internal.Event{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
	}
	if event.Start != nil {
		e.StartsAt = parseEventDateTime(event.Start)
		e.TimeZone = event.Start.TimeZone
	}
	if event.End != nil {
		e.EndsAt = parseEventDateTime(event.End)
	}
	if props := event.ExtendedProperties; props != nil {
		e.SyncID = props.Private[internal.SyncIDProperty]
	}
	if event.Reminders != nil {
		for _, r := range event.Reminders.Overrides {
			e.Reminders = append(e.Reminders, internal.Reminder{
				Method:  internal.ReminderMethod(r.Method),
				Minutes: r.Minutes,
			})
		}
	}
	return e
}

// parseEventDateTime handles both timed and all-day events.
func parseEventDateTime(dt *calendar.EventDateTime) time.Time {
	if dt.DateTime != "" {
		t, _ := time.Parse(time.RFC3339, dt.DateTime)
		return t
	}
	t, _ := time.Parse(internal.ISODateFormat, dt.Date)
	return t
}

func newGoogleEvent(event *internal.Event) *calendar.Event {
	overrides := make([]*calendar.EventReminder, 0, len(event.Reminders))
	for _, r := range event.Reminders {
		overrides = append(overrides, &calendar.EventReminder{
			Method:  r.Method.String(),
			Minutes: r.Minutes,
		})
	}

	gevent := &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Start: &calendar.EventDateTime{
			DateTime: event.StartsAt.Format(time.RFC3339),
			TimeZone: event.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: event.EndsAt.Format(time.RFC3339),
			TimeZone: event.TimeZone,
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides:  overrides,
			// false is the zero value, it would be dropped otherwise.
			ForceSendFields: []string{"UseDefault"},
		},
	}
	if event.SyncID != "" {
		gevent.ExtendedProperties = &calendar.EventExtendedProperties{
			Private: map[string]string{internal.SyncIDProperty: event.SyncID},
		}
	}
	return gevent
}
