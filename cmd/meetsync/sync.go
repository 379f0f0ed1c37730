package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guilherme-santos/meetsync/calendar"
	"github.com/guilherme-santos/meetsync/calendar/google"
	"github.com/guilherme-santos/meetsync/calendar/memory"
	"github.com/guilherme-santos/meetsync/internal"
	"github.com/guilherme-santos/meetsync/internal/config"
	"github.com/guilherme-santos/meetsync/internal/syncer"
)

func (c *cli) syncCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Create the calendar events missing for the ledger meetings",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if err := c.cfg.Validate(); err != nil {
				return err
			}
			cal, err := c.cfg.TargetCalendar()
			if err != nil {
				return err
			}
			mux, err := c.newMux(ctx)
			if err != nil {
				return err
			}
			provider, err := mux.Get(c.cfg.Provider)
			if err != nil {
				return err
			}

			l, err := c.ledger()
			if err != nil {
				return err
			}
			meetings, err := l.Records()
			if err != nil {
				return err
			}
			if len(meetings) == 0 {
				fmt.Fprintln(c.stdout, "No meetings found in", l.Path())
				return nil
			}

			var journal syncer.Journal
			if c.cfg.Journal.Path != "" {
				storage, err := c.openJournal()
				if err != nil {
					return err
				}
				defer storage.Close()
				journal = storage
			}

			s := syncer.New(c.stdout, provider, cal, journal)
			s.DryRun = dryRun
			report, err := s.Sync(ctx, meetings)
			if dryRun {
				fmt.Fprintf(c.stdout, "Dry run complete. Would add %d new events.\n", report.Count(internal.WouldCreate))
			} else {
				fmt.Fprintf(c.stdout, "Sync complete. Added %d new events.\n", report.Count(internal.Created))
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report the events that would be created without creating them")
	return cmd
}

func (c *cli) newMux(ctx context.Context) (internal.Mux, error) {
	mux := calendar.NewMux()
	switch c.cfg.Provider {
	case config.ProviderGoogle:
		credJSON, err := c.cfg.CredentialsJSON()
		if err != nil {
			return nil, err
		}
		googleCal, err := google.NewClient(ctx, credJSON)
		if err != nil {
			return nil, err
		}
		mux.Register(config.ProviderGoogle, googleCal)
	case config.ProviderMemory:
		mux.Register(config.ProviderMemory, memory.New())
	}
	return mux, nil
}
