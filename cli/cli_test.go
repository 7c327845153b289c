package cli

import (
	"bytes"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var frozen = time.Date(2016, time.March, 15, 23, 36, 12, 532*int(time.Millisecond), time.UTC)

func run(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = execute(func() time.Time { return frozen }, args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "moment", cmd.Use)

	for _, name := range []string{"now", "format", "start-of", "end-of", "add", "subtract", "compare", "diff", "leap", "units"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	tz := cmd.PersistentFlags().Lookup("tz")
	require.NotNil(t, tz)
	assert.Equal(t, "UTC", tz.DefValue)

	pattern := cmd.PersistentFlags().Lookup("pattern")
	require.NotNil(t, pattern)
	assert.Equal(t, "p", pattern.Shorthand)
	assert.Equal(t, "yyyy-MM-dd HH:mm:ss.SSS", pattern.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestGolden(t *testing.T) {
	const kickoff = "2016-03-15 23:36:12.532"

	tests := []struct {
		name string
		args []string
	}{
		{"now", []string{"now"}},
		{"now_tokyo", []string{"now", "--tz", "Asia/Tokyo"}},
		{"now_json", []string{"now", "--format", "json"}},
		{"format_epoch", []string{"format", "1458084972532", "-p", "EEEE, d MMMM yyyy h:mm a"}},
		{"start_of_week", []string{"start-of", "week", kickoff}},
		{"start_of_week_monday", []string{"start-of", "week", kickoff, "--first-day", "monday"}},
		{"end_of_month", []string{"end-of", "month", kickoff}},
		{"end_of_year", []string{"end-of", "year"}},
		{"add_day", []string{"add", "1", "dayOfMonth", kickoff}},
		{"add_negative_year", []string{"add", "--", "-1", "year", "2016-02-29 12:00:00.000"}},
		{"subtract_month", []string{"subtract", "1", "month", "2016-03-31 00:00:00.000"}},
		{"compare", []string{"compare", kickoff, "2016-03-15 08:00:00.000"}},
		{"compare_day", []string{"compare", kickoff, "2016-03-15 08:00:00.000", "--unit", "D"}},
		{"diff_days", []string{"diff", "2016-03-15 00:00:00.000", "2016-03-01 00:00:00.000", "-u", "D"}},
		{"diff_months", []string{"diff", "2016-05-15 00:00:00.000", "2016-03-15 00:00:00.000", "--unit", "month"}},
		{"diff_json", []string{"diff", "2016-03-15T00:00:00Z", "2016-03-01T00:00:00Z", "-u", "dayOfMonth", "--format", "json"}},
		{"leap", []string{"leap", "1900", "2000", "2004", "2100", "2023"}},
		{"units", []string{"units"}},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := run(t, tt.args...)
			require.Equal(t, ExitSuccess, code, stderr)

			g.Assert(t, tt.name, []byte(stdout))
		})
	}
}

func TestInputFlag(t *testing.T) {
	// GIVEN: a value in a layout other than --pattern
	// WHEN: reading it with --in
	// THEN: it is parsed with --in and printed with --pattern

	stdout, stderr, code := run(t, "format", "15/03/2016", "--in", "dd/MM/yyyy", "-p", "yyyy-MM-dd")

	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "2016-03-15\n", stdout)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"unknown unit", []string{"start-of", "fortnight"}, ExitCommandError, "bad unit"},
		{"unranked unit", []string{"start-of", "era"}, ExitCommandError, "start-of failed"},
		{"unreadable value", []string{"format", "yesterday"}, ExitCommandError, "cannot read"},
		{"bad amount", []string{"add", "one", "day"}, ExitCommandError, "bad amount"},
		{"bad year", []string{"leap", "soon"}, ExitCommandError, "bad year"},
		{"bad zone", []string{"now", "--tz", "Mars/Olympus"}, ExitCommandError, "invalid calendar flags"},
		{"bad pattern", []string{"now", "-p", "yyyy-ww"}, ExitCommandError, "invalid calendar flags"},
		{"bad format", []string{"now", "--format", "xml"}, ExitCommandError, "invalid format"},
		{"diff by am/pm", []string{"diff", "0", "1", "-u", "amPm"}, ExitCommandError, "diff failed"},
		{"missing args", []string{"compare", "0"}, ExitFailure, "accepts 2 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := run(t, tt.args...)

			assert.Equal(t, tt.code, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestErrors_JSON(t *testing.T) {
	stdout, stderr, code := run(t, "start-of", "fortnight", "--format", "json")

	assert.Equal(t, ExitCommandError, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, `"status":"error"`)
	assert.Contains(t, stdout, "bad unit")
}
