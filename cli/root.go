/*
Package cli implements the moment command line tool.

COMMANDS:
  now                          Current moment
  format <value>               Re-render a value with --pattern
  start-of <unit> <value>      Start of the unit window containing value
  end-of <unit> <value>        End of the unit window containing value
  add <amount> <unit> <value>  Add an amount of a unit
  subtract <amount> <unit> <value>
  compare <a> <b> [--unit u]   Every comparison of a against b
  diff <a> <b> --unit u        Exact difference a - b
  leap <year>...               Leap year check
  units                        Known unit names

VALUES:
  A value is read with --in when given. Otherwise it is tried against
  --pattern, then as RFC 3339 text or integer epoch milliseconds.
  Negative amounts need "--" before them: moment add -- -1 month <value>.

CALENDAR:
  --tz, --first-day and --min-days build the moment.Calendar every value is
  decomposed with.
*/
package cli

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/warp/moment/config"
	"github.com/warp/moment/moment"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Zone     string
	Pattern  string
	In       string
	FirstDay string
	MinDays  int
	Format   string // "json" | "text"

	cal moment.Calendar
	now func() time.Time
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the moment CLI.
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand(time.Now)
	return cmd
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	return execute(time.Now, args, stdout, stderr)
}

func execute(now func() time.Time, args []string, stdout, stderr io.Writer) int {
	cmd, opts := newRootCommand(now)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		f := &OutputFormatter{Format: opts.Format, Writer: stdout, ErrWriter: stderr}
		f.Error(err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

func newRootCommand(now func() time.Time) (*cobra.Command, *RootOptions) {
	opts := &RootOptions{now: now}

	cmd := &cobra.Command{
		Use:   "moment",
		Short: "moment - calendar arithmetic from the command line",
		Long:  "Parse, truncate, shift and compare moments with calendar-aware units.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.buildCalendar()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Zone, "tz", "UTC", "IANA time zone (or Local)")
	cmd.PersistentFlags().StringVarP(&opts.Pattern, "pattern", "p", "yyyy-MM-dd HH:mm:ss.SSS", "output pattern")
	cmd.PersistentFlags().StringVar(&opts.In, "in", "", "input pattern (default: --pattern, then RFC 3339 or epoch ms)")
	cmd.PersistentFlags().StringVar(&opts.FirstDay, "first-day", "sunday", "first day of the week")
	cmd.PersistentFlags().IntVar(&opts.MinDays, "min-days", 1, "minimal days in the first week of a year")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewNowCommand(opts))
	cmd.AddCommand(NewFormatCommand(opts))
	cmd.AddCommand(NewTruncateCommand(opts, "start-of"))
	cmd.AddCommand(NewTruncateCommand(opts, "end-of"))
	cmd.AddCommand(NewShiftCommand(opts, "add"))
	cmd.AddCommand(NewShiftCommand(opts, "subtract"))
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewLeapCommand(opts))
	cmd.AddCommand(NewUnitsCommand(opts))

	return cmd, opts
}

func (o *RootOptions) buildCalendar() error {
	cfg := config.Default()
	cfg.Calendar.Zone = o.Zone
	cfg.Calendar.FirstDayOfWeek = o.FirstDay
	cfg.Calendar.MinimalDaysInFirstWeek = o.MinDays
	cfg.Calendar.Pattern = o.Pattern

	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid calendar flags", err)
	}
	cal, err := cfg.MomentCalendar()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid calendar flags", err)
	}
	o.cal = cal
	return nil
}

// parse reads a value argument in the configured calendar.
func (o *RootOptions) parse(value string) (*moment.Moment, error) {
	if o.In != "" {
		return o.cal.Parse(value, o.In)
	}
	m, err := o.cal.Parse(value, o.Pattern)
	if err == nil {
		return m, nil
	}
	fallback := o.cal.FromEpochMillis(0)
	if fallback.UnmarshalText([]byte(value)) == nil {
		return fallback, nil
	}
	return nil, err
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
}
