package google

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/guilherme-santos/meetsync/internal"
)

const (
	defaultSleep      = 5 * time.Second
	defaultMaxRetries = 5

	// Only a handful of events exist on a single day.
	maxResults = 50
)

type Client struct {
	svc *calendar.Service

	sleep      time.Duration
	MaxRetries int
}

// NewClient returns a client authenticated with credJSON, either service
// account credentials or an authorized user file. credJSON may be base64
// encoded.
func NewClient(ctx context.Context, credJSON []byte) (*Client, error) {
	credJSON, err := decodeCredentials(credJSON)
	if err != nil {
		return nil, fmt.Errorf("google: decoding credentials: %v", err)
	}
	hc, err := httpClient(ctx, credJSON)
	if err != nil {
		return nil, fmt.Errorf("google: parsing credentials: %v", err)
	}
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("google: creating calendar service: %v", err)
	}
	return NewClientWithService(svc), nil
}

type credentialsFile struct {
	Type         string `json:"type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

func httpClient(ctx context.Context, credJSON []byte) (*http.Client, error) {
	var f credentialsFile
	if err := json.Unmarshal(credJSON, &f); err != nil {
		return nil, err
	}

	switch f.Type {
	case "service_account":
		jwtCfg, err := google.JWTConfigFromJSON(credJSON, calendar.CalendarScope)
		if err != nil {
			return nil, err
		}
		return jwtCfg.Client(ctx), nil
	case "authorized_user":
		if f.RefreshToken == "" {
			return nil, errors.New("authorized user credentials without refresh token")
		}
		oauthCfg := &oauth2.Config{
			ClientID:     f.ClientID,
			ClientSecret: f.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{calendar.CalendarScope},
		}
		return oauthCfg.Client(ctx, &oauth2.Token{RefreshToken: f.RefreshToken}), nil
	}
	return nil, fmt.Errorf("unsupported credentials type %q", f.Type)
}

func NewClientWithService(svc *calendar.Service) *Client {
	return &Client{
		svc:        svc,
		sleep:      defaultSleep,
		MaxRetries: defaultMaxRetries,
	}
}

func (c Client) ListEvents(ctx context.Context, cal *internal.Calendar, from, to time.Time) ([]*internal.Event, error) {
	call := c.svc.Events.
		List(cal.ID).
		Context(ctx).
		TimeMin(from.UTC().Format(time.RFC3339)).
		TimeMax(to.UTC().Format(time.RFC3339)).
		SingleEvents(true).
		MaxResults(maxResults)

	var (
		events        []*internal.Event
		nextPageToken string
	)
	for {
		var res *calendar.Events
		err := c.retry(ctx, cal, func() (err error) {
			res, err = call.PageToken(nextPageToken).Do()
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("google: listing events: %w", err)
		}
		for _, item := range res.Items {
			events = append(events, newEvent(item))
		}
		nextPageToken = res.NextPageToken
		if nextPageToken == "" {
			break
		}
	}
	log.Debugf("google: calendar %s: %d event(s) between %s and %s", cal, len(events), from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	return events, nil
}

func (c Client) CreateEvent(ctx context.Context, cal *internal.Calendar, req *internal.Event) (*internal.Event, error) {
	var gevent *calendar.Event
	err := c.retry(ctx, cal, func() (err error) {
		gevent, err = c.svc.Events.Insert(cal.ID, newGoogleEvent(req)).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("google: creating event: %w", err)
	}
	log.Debugf("google: calendar %s: created event %s", cal, gevent.Id)
	return newEvent(gevent), nil
}

// retry calls fn again while the API reports a rate limit.
func (c Client) retry(ctx context.Context, cal *internal.Calendar, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || !shouldRetry(err) || attempt >= c.MaxRetries {
			return err
		}
		log.Warnf("google: calendar %s: rate limited, retrying in %s", cal, c.sleep)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.sleep):
		}
	}
}

// decodeCredentials accepts credentials as JSON or base64 encoded JSON.
func decodeCredentials(b []byte) ([]byte, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, errors.New("credentials are empty")
	}
	if b[0] == '{' {
		return b, nil
	}
	return base64.StdEncoding.DecodeString(string(b))
}

func shouldRetry(err error) bool {
	return errIsReason(err, "rateLimitExceeded") || errIsReason(err, "userRateLimitExceeded")
}

func errIsReason(err error, reason string) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}

	for _, err := range gErr.Errors {
		switch err.Reason {
		case reason:
			return true
		}
	}
	return false
}
