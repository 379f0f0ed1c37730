package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/guilherme-santos/meetsync/internal"
)

func (c *cli) purgeCommand() *cobra.Command {
	var before internal.Date

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Remove past meetings from the ledger",
		Long: `Remove meetings dated before --before (today by default) from the ledger.
A copy of the ledger is saved with a .bak suffix first.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if before.IsZero() {
				loc, err := c.cfg.Location()
				if err != nil {
					return err
				}
				before = internal.Today(loc)
			}

			l, err := c.ledger()
			if err != nil {
				return err
			}
			res, err := l.PurgePast(before)
			if err != nil {
				return err
			}
			for _, m := range res.Removed {
				log.Debugf("removed %s", m)
			}
			fmt.Fprintf(c.stdout, "Removed %d meeting(s) before %s, %d left. Backup saved to %s\n",
				len(res.Removed), before, len(res.Kept), l.BackupPath())
			return nil
		},
	}

	cmd.Flags().Var(&before, "before", "remove meetings before this date (e.g. 2026-03-01)")
	return cmd
}
