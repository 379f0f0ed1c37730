package syncer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/guilherme-santos/meetsync/internal"
)

type Report struct {
	Outcomes []*Outcome
}

func (r *Report) Count(status internal.Status) int {
	var n int
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

func (r *Report) String() string {
	parts := []string{}
	for _, s := range []internal.Status{
		internal.Created,
		internal.WouldCreate,
		internal.SkippedDuplicate,
		internal.SkippedInvalid,
		internal.Failed,
	} {
		if n := r.Count(s); n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", s, n))
		}
	}
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}

func formatDateTime(d time.Time) string {
	return d.Format("02 Jan 06 15:04 MST")
}

func logf(w io.Writer, cal *Calendar, format string, a ...any) {
	fmt.Fprintf(w, "Calendar %s: %s\n", cal, fmt.Sprintf(format, a...))
}
