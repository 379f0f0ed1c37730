// Package ledger stores meetings in a CSV file.
//
// Every write reads the whole file, cleans it and stages the new content in a
// temporary file that is then renamed over the ledger, so a failed write never
// leaves a partially written ledger behind. The ledger assumes a single writer.
package ledger

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	log "github.com/sirupsen/logrus"

	"github.com/guilherme-santos/meetsync/internal"
)

// BackupSuffix is appended to the ledger name for the copy taken before a purge.
const BackupSuffix = ".bak"

const defaultMode os.FileMode = 0o644

var (
	ErrStorage     = errors.New("ledger storage failure")
	ErrMissingDate = errors.New("meeting date is required")
)

type Ledger struct {
	fs   billy.Filesystem
	name string
}

func New(fs billy.Filesystem, name string) *Ledger {
	return &Ledger{
		fs:   fs,
		name: name,
	}
}

// Open returns the ledger stored at path on the local disk.
func Open(path string) (*Ledger, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, storageErr("resolving ledger path", err)
	}
	root := filepath.VolumeName(abs) + string(filepath.Separator)
	name, err := filepath.Rel(root, abs)
	if err != nil {
		return nil, storageErr("resolving ledger path", err)
	}
	return New(osfs.New(root), name), nil
}

func (l *Ledger) Path() string {
	return l.fs.Join(l.fs.Root(), l.name)
}

func (l *Ledger) BackupPath() string {
	return l.Path() + BackupSuffix
}

// EnsureHeader creates the ledger, and any missing parent directory, with
// only the header row when it doesn't exist yet.
func (l *Ledger) EnsureHeader() error {
	_, err := l.fs.Stat(l.name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return storageErr("checking ledger", err)
	}
	if dir := filepath.Dir(l.name); dir != "." {
		if err := l.fs.MkdirAll(dir, 0o755); err != nil {
			return storageErr("creating ledger directory", err)
		}
	}
	log.Debugf("ledger: creating %s", l.Path())
	return l.write(nil)
}

// Append adds m at the end of the ledger. Blank rows and repeated header rows
// found in the existing content are dropped on the way.
func (l *Ledger) Append(m internal.Meeting) error {
	if m.Date == "" {
		return ErrMissingDate
	}
	if err := l.EnsureHeader(); err != nil {
		return err
	}
	raw, err := l.readRaw()
	if err != nil {
		return err
	}
	rows, err := parse(raw)
	if err != nil {
		return err
	}
	return l.write(append(rows, m.Row()))
}

type PurgeResult struct {
	Kept    []internal.Meeting
	Removed []internal.Meeting
}

// PurgePast removes meetings dated strictly before ref. A verbatim copy of
// the ledger is written to the backup file before the ledger is rewritten.
// Rows whose date can't be parsed are kept.
func (l *Ledger) PurgePast(ref internal.Date) (*PurgeResult, error) {
	raw, err := l.readRaw()
	if errors.Is(err, os.ErrNotExist) {
		err = l.EnsureHeader()
	}
	if err != nil {
		return nil, err
	}
	if err := l.stage(l.name+BackupSuffix, raw); err != nil {
		return nil, storageErr("writing backup", err)
	}

	rows, err := parse(raw)
	if err != nil {
		return nil, err
	}
	res := &PurgeResult{}
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		m := internal.MeetingFromRow(row)
		d, err := internal.ParseDate(m.Date)
		if err == nil && d.Before(ref) {
			res.Removed = append(res.Removed, m)
			continue
		}
		if err != nil {
			log.Debugf("ledger: keeping row with unparseable date %q", m.Date)
		}
		res.Kept = append(res.Kept, m)
		kept = append(kept, row)
	}
	if err := l.write(kept); err != nil {
		return nil, err
	}
	return res, nil
}

// Records returns every meeting in ledger order. A missing ledger has none.
func (l *Ledger) Records() ([]internal.Meeting, error) {
	raw, err := l.readRaw()
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rows, err := parse(raw)
	if err != nil {
		return nil, err
	}
	meetings := make([]internal.Meeting, len(rows))
	for i, row := range rows {
		meetings[i] = internal.MeetingFromRow(row)
	}
	return meetings, nil
}

// readRaw returns the ledger bytes. The error of a missing ledger also
// matches os.ErrNotExist.
func (l *Ledger) readRaw() ([]byte, error) {
	raw, err := util.ReadFile(l.fs, l.name)
	if err != nil {
		return nil, storageErr("reading ledger", err)
	}
	return raw, nil
}

// write replaces the ledger with the header followed by rows.
func (l *Ledger) write(rows [][]string) error {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	if err := w.Write(internal.Header); err != nil {
		return storageErr("encoding ledger", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return storageErr("encoding ledger", err)
	}
	if err := l.stage(l.name, b.Bytes()); err != nil {
		return storageErr("writing ledger", err)
	}
	return nil
}

// stage writes data to a temporary file next to name and renames it over name.
// The file keeps the mode of name, or of the ledger when name is new.
func (l *Ledger) stage(name string, data []byte) error {
	mode := l.mode(name)
	tmp, err := l.fs.TempFile(filepath.Dir(name), "."+filepath.Base(name)+"-")
	if err != nil {
		return err
	}
	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if ch, ok := l.fs.(billy.Change); ok && err == nil {
		if err = ch.Chmod(tmp.Name(), mode); errors.Is(err, billy.ErrNotSupported) {
			err = nil
		}
	}
	if err == nil {
		err = l.fs.Rename(tmp.Name(), name)
	}
	if err != nil {
		_ = l.fs.Remove(tmp.Name())
		return err
	}
	return nil
}

func (l *Ledger) mode(name string) os.FileMode {
	for _, n := range []string{name, l.name} {
		if fi, err := l.fs.Stat(n); err == nil {
			return fi.Mode().Perm()
		}
	}
	return defaultMode
}

// parse decodes the ledger content into data rows in Header order, without
// the header. Blank rows and rows equal to the header are dropped. Rows under
// a LegacyHeader are widened with an empty address.
func parse(raw []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, storageErr("parsing ledger", err)
	}

	for len(records) > 0 && blank(records[0]) {
		records = records[1:]
	}
	var legacy bool
	if len(records) > 0 && slices.Equal(records[0], internal.LegacyHeader) {
		legacy = true
		records = records[1:]
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		if blank(rec) || slices.Equal(rec, internal.Header) {
			continue
		}
		if legacy {
			if slices.Equal(rec, internal.LegacyHeader) {
				continue
			}
			rec = widen(rec)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// widen turns a date,location,time row into date,location,address,time.
func widen(rec []string) []string {
	if len(rec) < 3 {
		return rec
	}
	out := make([]string, 0, len(rec)+1)
	out = append(out, rec[0], rec[1], "")
	return append(out, rec[2:]...)
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func storageErr(action string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, action, err)
}
