// Package memory is an in-memory calendar provider.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guilherme-santos/meetsync/internal"
)

type Calendar struct {
	mu     sync.Mutex
	events map[string][]*internal.Event

	// OnList and OnCreate, when set, are called before the operation and
	// its error is returned instead.
	OnList   func(cal *internal.Calendar, from, to time.Time) error
	OnCreate func(cal *internal.Calendar, e *internal.Event) error
}

func New() *Calendar {
	return &Calendar{
		events: make(map[string][]*internal.Event),
	}
}

// ListEvents returns the events overlapping [from, to] ordered by start time.
func (c *Calendar) ListEvents(ctx context.Context, cal *internal.Calendar, from, to time.Time) ([]*internal.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.OnList != nil {
		if err := c.OnList(cal, from, to); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var events []*internal.Event
	for _, e := range c.events[cal.ID] {
		if e.StartsAt.Before(to) && e.EndsAt.After(from) {
			events = append(events, clone(e))
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartsAt.Before(events[j].StartsAt)
	})
	return events, nil
}

func (c *Calendar) CreateEvent(ctx context.Context, cal *internal.Calendar, e *internal.Event) (*internal.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.OnCreate != nil {
		if err := c.OnCreate(cal, e); err != nil {
			return nil, err
		}
	}

	created := clone(e)
	created.ID = uuid.NewString()
	c.Add(cal.ID, created)
	return clone(created), nil
}

// Add stores e as is on the calendar calID.
func (c *Calendar) Add(calID string, e *internal.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events[calID] = append(c.events[calID], clone(e))
}

// Events returns every event stored on the calendar calID in creation order.
func (c *Calendar) Events(calID string) []*internal.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	events := make([]*internal.Event, len(c.events[calID]))
	for i, e := range c.events[calID] {
		events[i] = clone(e)
	}
	return events
}

func clone(e *internal.Event) *internal.Event {
	c := *e
	c.Reminders = append([]internal.Reminder(nil), e.Reminders...)
	return &c
}
