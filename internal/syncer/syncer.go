package syncer

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/guilherme-santos/meetsync/internal"
)

var ErrSyncing = errors.New("an error occurred while syncing, check the logs")

type (
	Calendar = internal.Calendar
	Event    = internal.Event
	Meeting  = internal.Meeting
	Outcome  = internal.Outcome
)

// Journal keeps a record of every sync outcome.
type Journal interface {
	RecordOutcome(_ context.Context, _ *Calendar, _ *Outcome) error
}

type Syncer struct {
	output   io.Writer
	provider internal.Provider
	cal      *Calendar
	journal  Journal
	now      func() time.Time

	// DryRun reports the events that would be created without creating them.
	DryRun bool
}

// New returns a Syncer creating events on cal. journal may be nil.
func New(output io.Writer, provider internal.Provider, cal *Calendar, journal Journal) *Syncer {
	if output == nil {
		output = os.Stdout
	}
	return &Syncer{
		output:   output,
		provider: provider,
		cal:      cal,
		journal:  journal,
		now:      time.Now,
	}
}

// Sync creates a calendar event for each meeting that doesn't have one yet.
// Meetings are processed one at a time in order. A meeting failing doesn't
// stop the others, ErrSyncing is returned once all of them were processed.
func (s Syncer) Sync(ctx context.Context, meetings []Meeting) (*Report, error) {
	logf(s.output, s.cal, "Syncing %d meeting(s)...", len(meetings))

	report := &Report{}
	for _, m := range meetings {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		o := s.SyncMeeting(ctx, m)
		report.Outcomes = append(report.Outcomes, o)
		s.record(ctx, o)
	}

	if report.Count(internal.Failed) > 0 {
		logf(s.output, s.cal, "Sync complete with error! %s", report)
		return report, ErrSyncing
	}
	logf(s.output, s.cal, "Sync complete! %s", report)
	return report, nil
}

// SyncMeeting checks whether m is already on the calendar and creates it
// otherwise. The existence check always completes before the creation.
func (s Syncer) SyncMeeting(ctx context.Context, m Meeting) *Outcome {
	o := &Outcome{
		Meeting:     m,
		Fingerprint: m.Fingerprint(),
		SyncedAt:    s.now(),
	}
	entry := log.WithFields(log.Fields{
		"date":     m.Date,
		"location": m.Location,
		"sync_id":  o.Fingerprint,
	})

	if !m.Valid() {
		entry.Warn("skipping meeting without date or location")
		o.Status = internal.SkippedInvalid
		return o
	}
	date, err := internal.ParseDate(m.Date)
	if err != nil {
		entry.Warnf("skipping meeting: %v", err)
		o.Status = internal.SkippedInvalid
		o.Err = err
		return o
	}

	existing, err := s.findEvent(ctx, m, date, o.Fingerprint)
	if err != nil {
		logf(s.output, s.cal, "Unable to check for %s: %v", m, err)
		o.Status = internal.Failed
		o.Err = err
		return o
	}
	if existing != nil {
		logf(s.output, s.cal, "Meeting already exists: %s", m)
		o.Status = internal.SkippedDuplicate
		o.EventID = existing.ID
		return o
	}

	event := s.newEvent(entry, m, date, o.Fingerprint)
	if s.DryRun {
		logf(s.output, s.cal, "Would create event: %s on %s", event.Location, formatDateTime(event.StartsAt))
		o.Status = internal.WouldCreate
		return o
	}

	created, err := s.provider.CreateEvent(ctx, s.cal, event)
	if err != nil {
		logf(s.output, s.cal, "Unable to create event for %s: %v", m, err)
		o.Status = internal.Failed
		o.Err = err
		return o
	}
	logf(s.output, s.cal, "Created event: %s at %s on %s (%s)", m.Date, event.Location, formatDateTime(event.StartsAt), created.ID)
	o.Status = internal.Created
	o.EventID = created.ID
	return o
}

// findEvent returns the event already created for m, if any. Events are
// matched by sync id first and then, for events created before sync ids were
// stored, by legacyMatch.
func (s Syncer) findEvent(ctx context.Context, m Meeting, date internal.Date, fingerprint string) (*Event, error) {
	from, to := date.Window(s.cal.TimeZone)
	events, err := s.provider.ListEvents(ctx, s.cal, from, to)
	if err != nil {
		return nil, err
	}
	log.Debugf("found %d event(s) between %s and %s", len(events), from.Format(time.RFC3339), to.Format(time.RFC3339))

	for _, e := range events {
		if e.SyncID == fingerprint {
			return e, nil
		}
		if legacyMatch(s.cal.Summary, m, e) {
			log.Debugf("event %s matched %s by summary and location", e.ID, m)
			return e, nil
		}
	}
	return nil, nil
}

func (s Syncer) newEvent(entry *log.Entry, m Meeting, date internal.Date, fingerprint string) *Event {
	tr, err := internal.ParseTimeRangeOrDefault(m.Time)
	if err != nil {
		entry.Warnf("could not parse time %q, using %s", m.Time, tr)
	} else if tr.Overnight() {
		entry.Warnf("time %q ends the next day (%s)", m.Time, tr)
	}
	loc := s.cal.Location()
	start, end := tr.On(date, loc)

	return &Event{
		Summary:     s.cal.Summary,
		Description: s.cal.Description,
		Location:    m.CalendarLocation(),
		StartsAt:    start,
		EndsAt:      end,
		TimeZone:    loc.String(),
		SyncID:      fingerprint,
		Reminders:   internal.DefaultReminders,
	}
}

func (s Syncer) record(ctx context.Context, o *Outcome) {
	if s.journal == nil {
		return
	}
	if err := s.journal.RecordOutcome(ctx, s.cal, o); err != nil {
		log.Warnf("unable to record outcome of %s: %v", o.Meeting, err)
	}
}
