package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/guilherme-santos/meetsync/internal/ics"
)

func (c *cli) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ledger meetings as an iCalendar feed",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cal, err := c.cfg.TargetCalendar()
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

			if output == "" || output == "-" {
				return ics.Encode(c.stdout, cal, meetings, time.Now())
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %v", output, err)
			}
			defer f.Close()

			w := bufio.NewWriter(f)
			if err := ics.Encode(w, cal, meetings, time.Now()); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("writing %s: %v", output, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %v", output, err)
			}
			fmt.Fprintf(c.stdout, "Exported %d meeting(s) to %s\n", len(meetings), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, stdout when empty")
	return cmd
}
