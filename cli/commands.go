package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/warp/moment/moment"
)

// =============================================================================
// RESULTS
// =============================================================================

// MomentResult is printed by every command that produces a moment.
type MomentResult struct {
	Formatted   string `json:"formatted"`
	Instant     string `json:"instant"`
	EpochMillis int64  `json:"epoch_millis"`
}

func (r MomentResult) String() string { return r.Formatted }

// CompareResult holds every comparison of a against b.
type CompareResult struct {
	Unit           string `json:"unit,omitempty"`
	Compare        int    `json:"compare"`
	IsBefore       bool   `json:"is_before"`
	IsAfter        bool   `json:"is_after"`
	IsSame         bool   `json:"is_same"`
	IsSameOrBefore bool   `json:"is_same_or_before"`
	IsSameOrAfter  bool   `json:"is_same_or_after"`
}

func (r CompareResult) String() string {
	var b strings.Builder
	if r.Unit != "" {
		fmt.Fprintf(&b, "unit: %s\n", r.Unit)
	}
	fmt.Fprintf(&b, "compare: %d\n", r.Compare)
	fmt.Fprintf(&b, "isBefore: %t\n", r.IsBefore)
	fmt.Fprintf(&b, "isAfter: %t\n", r.IsAfter)
	fmt.Fprintf(&b, "isSame: %t\n", r.IsSame)
	fmt.Fprintf(&b, "isSameOrBefore: %t\n", r.IsSameOrBefore)
	fmt.Fprintf(&b, "isSameOrAfter: %t", r.IsSameOrAfter)
	return b.String()
}

// DiffResult is an exact difference in a unit.
type DiffResult struct {
	Unit  moment.Unit     `json:"unit"`
	Value decimal.Decimal `json:"value"`
}

func (r DiffResult) String() string { return r.Value.String() }

// LeapYear answers one year of the leap command.
type LeapYear struct {
	Year int  `json:"year"`
	Leap bool `json:"leap"`
}

// LeapResult lists leap year answers in argument order.
type LeapResult []LeapYear

func (r LeapResult) String() string {
	lines := make([]string, len(r))
	for i, y := range r {
		answer := "no"
		if y.Leap {
			answer = "yes"
		}
		lines[i] = fmt.Sprintf("%d %s", y.Year, answer)
	}
	return strings.Join(lines, "\n")
}

// UnitsResult lists unit names.
type UnitsResult []string

func (r UnitsResult) String() string { return strings.Join(r, "\n") }

func (o *RootOptions) result(m *moment.Moment) (MomentResult, error) {
	formatted, err := m.Format(o.Pattern)
	if err != nil {
		return MomentResult{}, err
	}
	instant, err := m.MarshalText()
	if err != nil {
		return MomentResult{}, err
	}
	return MomentResult{Formatted: formatted, Instant: string(instant), EpochMillis: m.UnixMilli()}, nil
}

// valueOrNow parses args[i], or returns the current moment when absent.
func (o *RootOptions) valueOrNow(args []string, i int) (*moment.Moment, error) {
	if i >= len(args) {
		return o.cal.FromTime(o.now()), nil
	}
	m, err := o.parse(args[i])
	if err != nil {
		return nil, inputError(fmt.Sprintf("cannot read %q", args[i]), err)
	}
	return m, nil
}

func parseUnit(name string) (moment.Unit, error) {
	u, err := moment.ParseUnit(name)
	if err != nil {
		return 0, inputError("bad unit", err)
	}
	return u, nil
}

func (o *RootOptions) printMoment(cmd *cobra.Command, m *moment.Moment) error {
	r, err := o.result(m)
	if err != nil {
		return inputError("cannot format", err)
	}
	return o.formatter(cmd).Success(r)
}

// =============================================================================
// COMMANDS
// =============================================================================

// NewNowCommand creates the now command.
func NewNowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Print the current moment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.printMoment(cmd, opts.cal.FromTime(opts.now()))
		},
	}
}

// NewFormatCommand creates the format command.
func NewFormatCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "format <value>",
		Short: "Read a value and print it with --pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.valueOrNow(args, 0)
			if err != nil {
				return err
			}
			return opts.printMoment(cmd, m)
		},
	}
}

// NewTruncateCommand creates start-of or end-of.
func NewTruncateCommand(opts *RootOptions, name string) *cobra.Command {
	short := "Start of the unit window containing value (default now)"
	if name == "end-of" {
		short = "End of the unit window containing value (default now)"
	}
	return &cobra.Command{
		Use:   name + " <unit> [value]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parseUnit(args[0])
			if err != nil {
				return err
			}
			m, err := opts.valueOrNow(args, 1)
			if err != nil {
				return err
			}
			if name == "end-of" {
				_, err = m.EndOf(u)
			} else {
				_, err = m.StartOf(u)
			}
			if err != nil {
				return inputError(name+" failed", err)
			}
			return opts.printMoment(cmd, m)
		},
	}
}

// NewShiftCommand creates add or subtract.
func NewShiftCommand(opts *RootOptions, name string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <amount> <unit> [value]",
		Short: strings.ToUpper(name[:1]) + name[1:] + " an amount of a unit (default now)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "bad amount", err)
			}
			u, err := parseUnit(args[1])
			if err != nil {
				return err
			}
			m, err := opts.valueOrNow(args, 2)
			if err != nil {
				return err
			}
			if name == "subtract" {
				_, err = m.Subtract(amount, u)
			} else {
				_, err = m.Add(amount, u)
			}
			if err != nil {
				return inputError(name+" failed", err)
			}
			return opts.printMoment(cmd, m)
		},
	}
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(opts *RootOptions) *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare a with b, optionally at a unit's precision",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.valueOrNow(args, 0)
			if err != nil {
				return err
			}
			b, err := opts.valueOrNow(args, 1)
			if err != nil {
				return err
			}

			if unit == "" {
				return opts.formatter(cmd).Success(CompareResult{
					Compare:        a.Compare(b),
					IsBefore:       a.IsBefore(b),
					IsAfter:        a.IsAfter(b),
					IsSame:         a.IsSame(b),
					IsSameOrBefore: a.IsSameOrBefore(b),
					IsSameOrAfter:  a.IsSameOrAfter(b),
				})
			}

			u, err := parseUnit(unit)
			if err != nil {
				return err
			}
			r := CompareResult{Unit: u.String()}
			for _, c := range []struct {
				dst *bool
				fn  func(moment.Instant, moment.Unit) (bool, error)
			}{
				{&r.IsBefore, a.IsBeforeIn},
				{&r.IsAfter, a.IsAfterIn},
				{&r.IsSame, a.IsSameIn},
				{&r.IsSameOrBefore, a.IsSameOrBeforeIn},
				{&r.IsSameOrAfter, a.IsSameOrAfterIn},
			} {
				if *c.dst, err = c.fn(b, u); err != nil {
					return inputError("compare failed", err)
				}
			}
			switch {
			case r.IsBefore:
				r.Compare = -1
			case r.IsAfter:
				r.Compare = 1
			}
			return opts.formatter(cmd).Success(r)
		},
	}

	cmd.Flags().StringVarP(&unit, "unit", "u", "", "compare at this unit's precision")
	return cmd
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(opts *RootOptions) *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Exact difference a - b in --unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parseUnit(unit)
			if err != nil {
				return err
			}
			a, err := opts.valueOrNow(args, 0)
			if err != nil {
				return err
			}
			b, err := opts.valueOrNow(args, 1)
			if err != nil {
				return err
			}
			d, err := a.Diff(b, u)
			if err != nil {
				return inputError("diff failed", err)
			}
			return opts.formatter(cmd).Success(DiffResult{Unit: u, Value: d})
		},
	}

	cmd.Flags().StringVarP(&unit, "unit", "u", "millisecond", "unit of the difference")
	return cmd
}

// NewLeapCommand creates the leap command.
func NewLeapCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "leap <year>...",
		Short: "Report whether years are leap years",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := make(LeapResult, len(args))
			for i, arg := range args {
				year, err := strconv.Atoi(arg)
				if err != nil {
					return WrapExitError(ExitCommandError, "bad year", err)
				}
				r[i] = LeapYear{Year: year, Leap: moment.IsLeapYear(year)}
			}
			return opts.formatter(cmd).Success(r)
		},
	}
}

// NewUnitsCommand creates the units command.
func NewUnitsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List unit names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			units := moment.Units()
			r := make(UnitsResult, len(units))
			for i, u := range units {
				r[i] = u.String()
			}
			return opts.formatter(cmd).Success(r)
		},
	}
}
