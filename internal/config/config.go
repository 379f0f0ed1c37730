package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"

	"github.com/guilherme-santos/meetsync/internal"
)

const (
	EnvPrefix = "MEETSYNC_"

	ProviderGoogle = "google"
	ProviderMemory = "memory"
)

var ErrMissingConfiguration = errors.New("missing configuration")

// legacyEnv are variables read before the MEETSYNC_ prefix existed.
var legacyEnv = map[string]string{
	"GOOGLE_CALENDAR_ID":          "google.calendarid",
	"GOOGLE_CALENDAR_CREDENTIALS": "google.credentials",
	"LOG_LEVEL":                   "log.level",
}

type Application struct {
	Provider string   `koanf:"provider"`
	Ledger   Ledger   `koanf:"ledger"`
	Calendar Calendar `koanf:"calendar"`
	Google   Google   `koanf:"google"`
	Journal  Journal  `koanf:"journal"`
	Log      Log      `koanf:"log"`
}

type Ledger struct {
	Path string `koanf:"path"`
}

type Calendar struct {
	Name        string `koanf:"name"`
	TimeZone    string `koanf:"timezone"`
	Summary     string `koanf:"summary"`
	Description string `koanf:"description"`
}

type Google struct {
	CalendarID string `koanf:"calendarid"`
	// Credentials holds inline service account JSON, optionally base64 encoded.
	Credentials     string `koanf:"credentials"`
	CredentialsFile string `koanf:"credentialsfile"`
}

type Journal struct {
	// Path of the sqlite database. The journal is disabled when empty.
	Path string `koanf:"path"`
}

type Log struct {
	Level string `koanf:"level"`
}

func Defaults() Application {
	return Application{
		Provider: ProviderGoogle,
		Ledger: Ledger{
			Path: "_data/meetings.csv",
		},
		Calendar: Calendar{
			TimeZone:    "America/New_York",
			Summary:     "Fairfax Jugglers Meeting",
			Description: "Fairfax Jugglers Meetup",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load layers the defaults, the YAML file at path (when it exists) and the
// environment, in that order.
func Load(path string) (Application, error) {
	return load(path, os.Environ)
}

func load(path string, environ func() []string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return Application{}, fmt.Errorf("config: loading defaults: %v", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Application{}, fmt.Errorf("config: loading %s: %v", path, err)
			}
			log.Debugf("config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Debugf("loaded configuration from file: %s", path)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		EnvironFunc: environ,
		TransformFunc: func(k, v string) (string, any) {
			// Empty values and keys are skipped.
			if v == "" {
				return "", nil
			}
			return legacyEnv[k], v
		},
	}), nil)
	if err != nil {
		return Application{}, fmt.Errorf("config: loading legacy environment: %v", err)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix:      EnvPrefix,
		EnvironFunc: environ,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		return Application{}, fmt.Errorf("config: loading environment: %v", err)
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, fmt.Errorf("config: %v", err)
	}
	return app, nil
}

// Validate reports what is missing to sync against the configured provider.
func (app Application) Validate() error {
	if _, err := app.Location(); err != nil {
		return err
	}

	switch app.Provider {
	case ProviderMemory:
		return nil
	case ProviderGoogle:
		if app.Google.CalendarID == "" {
			return fmt.Errorf("%w: google calendar id (GOOGLE_CALENDAR_ID)", ErrMissingConfiguration)
		}
		if app.Google.Credentials == "" && app.Google.CredentialsFile == "" {
			return fmt.Errorf("%w: google credentials (GOOGLE_CALENDAR_CREDENTIALS)", ErrMissingConfiguration)
		}
		return nil
	}
	return fmt.Errorf("config: unknown provider %q", app.Provider)
}

func (app Application) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(app.Calendar.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("config: calendar timezone: %v", err)
	}
	return loc, nil
}

// TargetCalendar returns the calendar meetings are synced to.
func (app Application) TargetCalendar() (*internal.Calendar, error) {
	loc, err := app.Location()
	if err != nil {
		return nil, err
	}
	id := app.Google.CalendarID
	if app.Provider == ProviderMemory {
		id = ProviderMemory
	}
	return &internal.Calendar{
		ID:          id,
		Name:        app.Calendar.Name,
		Summary:     app.Calendar.Summary,
		Description: app.Calendar.Description,
		TimeZone:    loc,
	}, nil
}

// CredentialsJSON returns the inline credentials or, when unset, the content
// of the credentials file.
func (app Application) CredentialsJSON() ([]byte, error) {
	if app.Google.Credentials != "" {
		return []byte(app.Google.Credentials), nil
	}
	if app.Google.CredentialsFile == "" {
		return nil, fmt.Errorf("%w: google credentials", ErrMissingConfiguration)
	}
	b, err := os.ReadFile(app.Google.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("config: reading credentials: %v", err)
	}
	return b, nil
}
