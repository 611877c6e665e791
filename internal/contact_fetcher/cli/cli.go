// Package cli wires the command line of contact_fetcher onto the pipeline.
//
// Every run ends in exactly one call to domain.ExitWithMessage, whatever the
// outcome, except for -h/--help which exits 0 after printing usage.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	urfave "github.com/urfave/cli/v2"

	"github.com/aradsms/contact_fetcher/internal/contact_fetcher/app"
	"github.com/aradsms/contact_fetcher/internal/contact_fetcher/domain"
)

const appName = "contact_fetcher"

// Command is the contact_fetcher command line.
type Command struct {
	application     *app.Application
	stdout          io.Writer
	stderr          io.Writer
	logger          *slog.Logger
	metricsTextfile string
}

// NewCommand creates a Command. metricsTextfile may be empty.
func NewCommand(application *app.Application, stdout, stderr io.Writer, logger *slog.Logger, metricsTextfile string) *Command {
	return &Command{
		application:     application,
		stdout:          stdout,
		stderr:          stderr,
		logger:          logger,
		metricsTextfile: metricsTextfile,
	}
}

// ParseOptions builds the run options from raw flag values. The sort value
// is kept as given and only normalised when sorting; the filter must
// compile.
func ParseOptions(sort, filter string) (app.Options, error) {
	re, err := domain.CompileFilter(filter)
	if err != nil {
		return app.Options{}, err
	}
	return app.Options{
		SortField: domain.SortField(sort),
		Filter:    re,
	}, nil
}

func sortUsage() string {
	quoted := make([]string, len(domain.SortFields))
	for i, f := range domain.SortFields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	return "Sort contacts by one of [" + strings.Join(quoted, ", ") + "]"
}

func (c *Command) newApp(action urfave.ActionFunc) *urfave.App {
	return &urfave.App{
		Name:            appName,
		Usage:           "Fetch, filter, sort and print the phonebook contact list",
		UsageText:       appName + " [options]",
		HideHelpCommand: true,
		Writer:          c.stdout,
		ErrWriter:       c.stderr,
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:    "sort",
				Aliases: []string{"s"},
				Usage:   sortUsage(),
				Value:   string(domain.SortByName),
			},
			&urfave.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Filter contacts using string argument (regular expression matched against the name)",
				Value:   domain.MatchAll.String(),
			},
		},
		Action: action,
		// Usage errors are reported through the status line only.
		OnUsageError: func(_ *urfave.Context, err error, _ bool) error {
			return err
		},
		// The exit is taken by Main, not by the framework.
		ExitErrHandler: func(*urfave.Context, error) {},
	}
}

// Execute parses args and runs the pipeline. ran reports whether the
// action was invoked at all; it is false after --help.
func (c *Command) Execute(ctx context.Context, args []string) (ran bool, err error) {
	cliApp := c.newApp(func(cCtx *urfave.Context) error {
		ran = true

		opts, err := ParseOptions(cCtx.String("sort"), cCtx.String("filter"))
		if err != nil {
			c.logger.ErrorContext(cCtx.Context, "Invalid command line options", "error", err)
			return domain.ClassifyError(err)
		}

		return c.application.Run(cCtx.Context, opts, c.stdout)
	})

	err = cliApp.RunContext(ctx, args)
	return ran, err
}

// Main runs the command and terminates the process.
func (c *Command) Main(ctx context.Context, args []string) {
	ran, err := c.Execute(ctx, args)

	exitErr := domain.ClassifyError(err)
	if exitErr == nil && !ran {
		domain.Exiter(int(domain.NoError))
		return
	}

	code, message := domain.NoError, domain.SuccessMessage
	if exitErr != nil {
		code, message = exitErr.Code, exitErr.Message
	}
	c.recordOutcome(ctx, code)

	domain.ExitWithMessage(c.stdout, code, message)
}

func (c *Command) recordOutcome(ctx context.Context, code domain.ErrorCode) {
	metrics := c.application.Metrics()
	metrics.ObserveOutcome(code.String())
	c.logger.InfoContext(ctx, "Run finished", "outcome", code.String())

	if c.metricsTextfile == "" {
		return
	}
	if err := metrics.WriteTextfile(c.metricsTextfile); err != nil {
		c.logger.WarnContext(ctx, "Failed to write metrics textfile", "path", c.metricsTextfile, "error", err)
	}
}
