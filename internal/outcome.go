package internal

import "time"

type Status string

func (s Status) String() string {
	return string(s)
}

var (
	SkippedInvalid   Status = "skipped-invalid"
	SkippedDuplicate Status = "skipped-duplicate"
	WouldCreate      Status = "would-create"
	Created          Status = "created"
	Failed           Status = "failed"
)

// Outcome is the result of syncing one meeting.
type Outcome struct {
	Meeting     Meeting
	Fingerprint string
	Status      Status
	EventID     string
	Err         error
	SyncedAt    time.Time
}
