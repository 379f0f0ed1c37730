package internal

import "time"

// Calendar is the remote calendar meetings are synced to.
type Calendar struct {
	// ID of the calendar on the provider, e.g. the google calendar id.
	ID          string
	Name        string
	Summary     string
	Description string
	TimeZone    *time.Location
}

func (c Calendar) Location() *time.Location {
	if c.TimeZone == nil {
		return time.UTC
	}
	return c.TimeZone
}

func (c Calendar) String() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}
