package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/guilherme-santos/meetsync/internal/config"
	"github.com/guilherme-santos/meetsync/internal/sqlite"
)

const historyTimeFormat = "2006-01-02 15:04:05"

func (c *cli) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the latest sync outcomes recorded in the journal",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.Journal.Path == "" {
				return fmt.Errorf("%w: journal path (MEETSYNC_JOURNAL_PATH)", config.ErrMissingConfiguration)
			}
			storage, err := c.openJournal()
			if err != nil {
				return err
			}
			defer storage.Close()

			entries, err := storage.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(c.stdout, "No sync recorded yet")
				return nil
			}

			w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SYNCED AT\tSTATUS\tDATE\tLOCATION\tEVENT\tERROR")
			for _, e := range entries {
				o := e.Convert()
				var errMsg string
				if o.Err != nil {
					errMsg = o.Err.Error()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					o.SyncedAt.Local().Format(historyTimeFormat), o.Status, o.Meeting.Date, o.Meeting.Location, o.EventID, errMsg)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show, all when 0")
	return cmd
}

func (c *cli) openJournal() (*sqlite.Storage, error) {
	return sqlite.Open(c.cfg.Journal.Path)
}
