package internal

import (
	"context"
	"time"
)

type Mux interface {
	Get(platform string) (Provider, error)
}

// Provider is a remote calendar.
type Provider interface {
	// ListEvents returns the events overlapping [from, to] in listing order.
	ListEvents(_ context.Context, _ *Calendar, from, to time.Time) ([]*Event, error)
	CreateEvent(_ context.Context, _ *Calendar, _ *Event) (*Event, error)
}
