package main

import (
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/guilherme-santos/meetsync/internal/config"
	"github.com/guilherme-santos/meetsync/internal/ledger"
)

const defaultConfigFile = "meetsync.yaml"

// cli holds the state shared by every command.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configFile string
	ledgerPath string
	verbose    bool

	cfg config.Application
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:   "meetsync",
		Short: "Keep a calendar in sync with a ledger of meetings",
		Long: `meetsync stores meeting dates in a CSV ledger and creates the matching
events on a Google calendar, never creating the same event twice.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", defaultConfigFile, "YAML configuration file")
	flags.StringVar(&c.ledgerPath, "ledger", "", "meetings CSV ledger (overrides ledger.path)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "print debug logs")

	root.AddCommand(
		c.addCommand(),
		c.purgeCommand(),
		c.syncCommand(),
		c.exportCommand(),
		c.historyCommand(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	log.SetOutput(c.stderr)

	cfg, err := config.Load(c.configFile)
	if err != nil {
		return err
	}
	if c.ledgerPath != "" {
		cfg.Ledger.Path = c.ledgerPath
	}
	c.cfg = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Warnf("invalid log level %q, using info", cfg.Log.Level)
		level = log.InfoLevel
	}
	if c.verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	return nil
}

func (c *cli) ledger() (*ledger.Ledger, error) {
	return ledger.Open(c.cfg.Ledger.Path)
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return newUsageError("%s takes no arguments, got %q", cmd.CommandPath(), args)
	}
	return nil
}
