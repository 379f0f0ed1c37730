package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/guilherme-santos/meetsync/internal/config"
	"github.com/guilherme-santos/meetsync/internal/ledger"
)

const (
	exitError         = 1
	exitUsage         = 2
	exitStorage       = 3
	exitMissingConfig = 4
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitCode(err)
}

func exitCode(err error) int {
	var uErr usageError
	switch {
	case errors.As(err, &uErr):
		return exitUsage
	case errors.Is(err, ledger.ErrStorage):
		return exitStorage
	case errors.Is(err, config.ErrMissingConfiguration):
		return exitMissingConfig
	}
	return exitError
}

type usageError struct {
	err error
}

func newUsageError(format string, a ...any) error {
	return usageError{err: fmt.Errorf(format, a...)}
}

func (e usageError) Error() string {
	return e.err.Error()
}

func (e usageError) Unwrap() error {
	return e.err
}
