package sqlite

import (
	"errors"
	"time"

	"github.com/guilherme-santos/meetsync/internal"
)

type Entry struct {
	ID          int64  `db:"id"`
	CalendarID  string `db:"calendar_id"`
	Fingerprint string
	Date        string `db:"meeting_date"`
	Location    string
	Address     string
	Time        string `db:"meeting_time"`
	Status      string
	EventID     string `db:"event_id"`
	Error       string
	SyncedAt    string `db:"synced_at"`
}

func newEntry(cal *internal.Calendar, o *internal.Outcome) Entry {
	e := Entry{
		CalendarID:  cal.ID,
		Fingerprint: o.Fingerprint,
		Date:        o.Meeting.Date,
		Location:    o.Meeting.Location,
		Address:     o.Meeting.Address,
		Time:        o.Meeting.Time,
		Status:      o.Status.String(),
		EventID:     o.EventID,
		SyncedAt:    o.SyncedAt.UTC().Format(time.RFC3339),
	}
	if o.Err != nil {
		e.Error = o.Err.Error()
	}
	return e
}

func (e Entry) Convert() *internal.Outcome {
	o := &internal.Outcome{
		Meeting: internal.Meeting{
			Date:     e.Date,
			Location: e.Location,
			Address:  e.Address,
			Time:     e.Time,
		},
		Fingerprint: e.Fingerprint,
		Status:      internal.Status(e.Status),
		EventID:     e.EventID,
	}
	o.SyncedAt, _ = time.Parse(time.RFC3339, e.SyncedAt)
	if e.Error != "" {
		o.Err = errors.New(e.Error)
	}
	return o
}
