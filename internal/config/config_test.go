package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func environ(vars ...string) func() []string {
	return func() []string { return vars }
}

func TestLoad_Defaults(t *testing.T) {
	app, err := load(filepath.Join(t.TempDir(), "missing.yaml"), environ())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), app)
}

func TestLoad_Layers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meetsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ledger:
  path: /var/lib/meetsync/meetings.csv
calendar:
  name: Jugglers
  timezone: America/Chicago
google:
  calendarid: from-file
journal:
  path: /var/lib/meetsync/journal.db
`), 0o600))

	app, err := load(path, environ(
		"GOOGLE_CALENDAR_ID=legacy",
		"GOOGLE_CALENDAR_CREDENTIALS={}",
		"MEETSYNC_GOOGLE_CALENDARID=prefixed",
		"MEETSYNC_LOG_LEVEL=debug",
		"HOME=/root",
	))
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/meetsync/meetings.csv", app.Ledger.Path)
	assert.Equal(t, "Jugglers", app.Calendar.Name)
	assert.Equal(t, "America/Chicago", app.Calendar.TimeZone)
	assert.Equal(t, "Fairfax Jugglers Meeting", app.Calendar.Summary)
	assert.Equal(t, "prefixed", app.Google.CalendarID)
	assert.Equal(t, "{}", app.Google.Credentials)
	assert.Equal(t, "/var/lib/meetsync/journal.db", app.Journal.Path)
	assert.Equal(t, "debug", app.Log.Level)
}

func TestLoad_LegacyEnvironment(t *testing.T) {
	app, err := load("", environ("GOOGLE_CALENDAR_ID=legacy", "LOG_LEVEL=warn"))
	require.NoError(t, err)
	assert.Equal(t, "legacy", app.Google.CalendarID)
	assert.Equal(t, "warn", app.Log.Level)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meetsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger: [unclosed"), 0o600))

	_, err := load(path, environ())
	assert.Error(t, err)
}

func TestApplication_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Application)
		missing bool
		invalid bool
	}{
		{
			name:    "defaults",
			mutate:  func(*Application) {},
			missing: true,
		},
		{
			name: "credentials without calendar",
			mutate: func(app *Application) {
				app.Google.Credentials = "{}"
			},
			missing: true,
		},
		{
			name: "calendar without credentials",
			mutate: func(app *Application) {
				app.Google.CalendarID = "cal"
			},
			missing: true,
		},
		{
			name: "credentials file",
			mutate: func(app *Application) {
				app.Google.CalendarID = "cal"
				app.Google.CredentialsFile = "/etc/meetsync/credentials.json"
			},
		},
		{
			name: "memory provider",
			mutate: func(app *Application) {
				app.Provider = ProviderMemory
			},
		},
		{
			name: "unknown provider",
			mutate: func(app *Application) {
				app.Provider = "outlook"
			},
			invalid: true,
		},
		{
			name: "unknown timezone",
			mutate: func(app *Application) {
				app.Provider = ProviderMemory
				app.Calendar.TimeZone = "Mars/Olympus"
			},
			invalid: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := Defaults()
			tc.mutate(&app)

			err := app.Validate()
			switch {
			case tc.missing:
				assert.ErrorIs(t, err, ErrMissingConfiguration)
			case tc.invalid:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrMissingConfiguration)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplication_TargetCalendar(t *testing.T) {
	app := Defaults()
	app.Google.CalendarID = "jugglers@group.calendar.google.com"

	cal, err := app.TargetCalendar()
	require.NoError(t, err)
	assert.Equal(t, "jugglers@group.calendar.google.com", cal.ID)
	assert.Equal(t, "America/New_York", cal.Location().String())
	assert.Equal(t, "Fairfax Jugglers Meeting", cal.Summary)
	assert.Equal(t, "Fairfax Jugglers Meetup", cal.Description)

	app.Provider = ProviderMemory
	cal, err = app.TargetCalendar()
	require.NoError(t, err)
	assert.Equal(t, ProviderMemory, cal.ID)
}

func TestApplication_CredentialsJSON(t *testing.T) {
	app := Defaults()
	_, err := app.CredentialsJSON()
	assert.ErrorIs(t, err, ErrMissingConfiguration)

	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600))
	app.Google.CredentialsFile = path
	b, err := app.CredentialsJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"type":"service_account"}`, string(b))

	app.Google.Credentials = "inline"
	b, err = app.CredentialsJSON()
	require.NoError(t, err)
	assert.Equal(t, "inline", string(b))
}
