package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/moment/config"
	"github.com/warp/moment/moment"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, config.DriverSQLite, cfg.Store.Driver)

	cal, err := cfg.MomentCalendar()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, cal.Location)
	assert.Equal(t, time.Sunday, cal.FirstDayOfWeek)
	assert.Equal(t, 1, cal.MinimalDaysInFirstWeek)
}

func TestLoad_YAMLAndTOMLAgree(t *testing.T) {
	// GIVEN: the same settings written as YAML and as TOML
	// WHEN: loading both
	// THEN: they produce the same configuration, with unset keys defaulted

	for _, name := range []string{"server.yaml", "server.toml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.Load(filepath.Join("testdata", name))
			require.NoError(t, err)

			assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
			assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout.Duration)
			assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout.Duration, "default kept")
			assert.Equal(t, time.Minute, cfg.Server.ShutdownTimeout.Duration)
			assert.Equal(t, []string{"https://example.test"}, cfg.Server.CORS.AllowedOrigins)
			assert.Equal(t, config.DriverMemory, cfg.Store.Driver)

			unit, err := cfg.DigestUnit()
			require.NoError(t, err)
			assert.Equal(t, moment.WeekOfYear, unit)
			assert.Equal(t, "yyyy-MM-dd HH:mm:ss.SSS", cfg.Calendar.Pattern, "default kept")

			cal, err := cfg.MomentCalendar()
			require.NoError(t, err)
			assert.Equal(t, "Europe/Berlin", cal.Location.String())
			assert.Equal(t, time.Monday, cal.FirstDayOfWeek)
			assert.Equal(t, 4, cal.MinimalDaysInFirstWeek)
		})
	}
}

func TestLoad_ReportsEveryInvalidSetting(t *testing.T) {
	_, err := config.Load(filepath.Join("testdata", "invalid.yaml"))
	require.Error(t, err)

	for _, field := range []string{
		"server.port",
		"server.digest_unit",
		"store.driver",
		"calendar.zone",
		"calendar.first_day_of_week",
		"calendar.minimal_days_in_first_week",
		"calendar.pattern",
	} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()
	ini := filepath.Join(dir, "server.ini")
	require.NoError(t, os.WriteFile(ini, []byte("port=1"), 0o644))

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml"), "config file not found"},
		{"unknown extension", ini, "unsupported config format"},
		{"malformed toml", filepath.Join("testdata", "malformed.toml"), "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  path: ${MOMENT_DATA}/marks.db\n"), 0o644))
	t.Setenv("MOMENT_DATA", dir)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, dir+"/marks.db", cfg.Store.Path)
}

func TestValidate_SQLiteNeedsPath(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Path = ""

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.path")
}

func TestDigestUnit(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    moment.Unit
		wantErr string
	}{
		{name: "unset", value: "", want: 0},
		{name: "canonical", value: "dayOfMonth", want: moment.DayOfMonth},
		{name: "alias", value: "hours", want: moment.HourOfDay},
		{name: "unknown", value: "fortnight", wantErr: "unknown unit"},
		{name: "no window", value: "amPm", wantErr: "has no window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Server.DigestUnit = tt.value

			got, err := cfg.DigestUnit()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.ErrorContains(t, cfg.Validate(), "server.digest_unit")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"", time.Sunday, false},
		{"monday", time.Monday, false},
		{"SAT", time.Saturday, false},
		{"Thursday", time.Thursday, false},
		{"someday", time.Sunday, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParseWeekday(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDuration_UnmarshalText(t *testing.T) {
	var d config.Duration

	require.NoError(t, d.UnmarshalText([]byte("1h30m")))
	assert.Equal(t, 90*time.Minute, d.Duration)
	assert.Error(t, d.UnmarshalText([]byte("soon")))

	text, err := config.Duration{Duration: 5 * time.Minute}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "5m0s", string(text))
}
