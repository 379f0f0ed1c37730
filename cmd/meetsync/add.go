package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guilherme-santos/meetsync/internal"
)

func (c *cli) addCommand() *cobra.Command {
	var m internal.Meeting

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Append a meeting to the ledger",
		Example: `  meetsync add --date 03/01/2026 --location Park --address "123 Main St" --time 7-9pm`,
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m.Date = strings.TrimSpace(m.Date)
			m.Location = strings.TrimSpace(m.Location)
			if m.Date == "" || m.Location == "" {
				return newUsageError("both --date and --location are required")
			}

			l, err := c.ledger()
			if err != nil {
				return err
			}
			if err := l.Append(m); err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "Appended meeting %s to %s\n", m, l.Path())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&m.Date, "date", "", "date of the meeting (e.g. 01/15/2026)")
	flags.StringVar(&m.Location, "location", "", "location of the meeting")
	flags.StringVar(&m.Address, "address", "", "street address of the location")
	flags.StringVar(&m.Time, "time", "", "time of the meeting (e.g. 7-9pm)")
	return cmd
}
