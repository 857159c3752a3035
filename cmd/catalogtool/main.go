// Command catalogtool maintains the company catalog directory.
//
//	catalogtool verify [-dir DIR] [-strict]
//	catalogtool tidy [-dir DIR] [-dry-run]
//	catalogtool add-missing -in FILE [-dir DIR] [-threshold N] [-dry-run]
//
// verify lists every company with its product count and the products
// claimed by more than one company. tidy groups pack sizes of the same
// product and rewrites each file with a "Product Name" header. add-missing
// merges a file of ITNAME,Company rows into the catalog files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"salespulse/internal/config"
	"salespulse/internal/console"
	apperrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	"salespulse/pkg/contracts"
)

const usage = `usage: catalogtool <command> [flags]

commands:
  verify       list companies, product counts and conflicting products
  tidy         group pack sizes and rewrite catalog files
  add-missing  merge ITNAME,Company rows into the catalog
  version      print the version
`

// errFindings makes a command exit 1 without being reported as a failure
var errFindings = errors.New("findings reported")

type command struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cmd := &command{
		stdout: stdout,
		stderr: stderr,
		logger: infrastructure.NewFormattedLogger(stderr, config.LogFormatText, "warn"),
	}
	ctx = infrastructure.EnsureTraceID(ctx)

	var err error
	switch args[0] {
	case "verify":
		err = cmd.verify(ctx, args[1:])
	case "tidy":
		err = cmd.tidy(ctx, args[1:])
	case "add-missing":
		err = cmd.addMissing(ctx, args[1:])
	case "version", "-version", "--version":
		fmt.Fprintln(stdout, contracts.VersionString("catalogtool"))
		return 0
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	var usageErr *usageError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.As(err, &usageErr):
		if usageErr.msg != "" {
			fmt.Fprintln(stderr, usageErr.msg)
		}
		return 2
	case errors.Is(err, errFindings):
		return 1
	default:
		cmd.logger.ErrorContext(ctx, "Command failed",
			slog.String("command", args[0]),
			slog.String("kind", apperrors.Kind(err)),
			slog.String("error", err.Error()))
		fmt.Fprintln(stdout, console.Failure(args[0], err))
		return 1
	}
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func (c *command) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		// the flag set already printed the problem
		return &usageError{}
	}
	if fs.NArg() > 0 {
		return &usageError{msg: fmt.Sprintf("%s: unexpected arguments %v", fs.Name(), fs.Args())}
	}
	return nil
}

func catalogDirFlag(fs *flag.FlagSet) *string {
	return fs.String("dir", config.DefaultCatalogDir, "company catalog directory")
}
