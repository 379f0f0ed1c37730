package internal

import "time"

// SyncIDProperty is the private extended property holding a meeting fingerprint.
const SyncIDProperty = "meeting_sync_id"

type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	TimeZone    string
	SyncID      string
	Reminders   []Reminder
}

type ReminderMethod string

func (m ReminderMethod) String() string {
	return string(m)
}

var (
	ReminderEmail ReminderMethod = "email"
	ReminderPopup ReminderMethod = "popup"
)

type Reminder struct {
	Method  ReminderMethod
	Minutes int64
}

// DefaultReminders are set on every event we create: an email the day before
// and a popup one hour before.
var DefaultReminders = []Reminder{
	{Method: ReminderEmail, Minutes: 24 * 60},
	{Method: ReminderPopup, Minutes: 60},
}
