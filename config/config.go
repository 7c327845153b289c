/*
Package config loads server and calendar settings.

PURPOSE:
  One Config drives cmd/server: listen address and timeouts, CORS origins,
  which timeline store to open, and the calendar every moment is expressed
  in. Files are YAML or TOML, picked by extension. Anything a file leaves
  out keeps its Default() value.

EXAMPLE (config.yaml):
  server:
    port: 8080
    read_timeout: 15s
    cors:
      allowed_origins: ["http://localhost:3000"]
  store:
    driver: sqlite
    path: ./data/marks.db
  calendar:
    zone: Europe/Berlin
    first_day_of_week: monday
    minimal_days_in_first_week: 4
    pattern: yyyy-MM-dd HH:mm:ss.SSS

ENVIRONMENT:
  ${VAR} references in the file path, store path and zone are expanded.

SEE ALSO:
  - cmd/server/main.go: flags override the loaded values
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/warp/moment/moment"
	"github.com/warp/moment/pattern"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Store    StoreConfig    `yaml:"store" toml:"store"`
	Calendar CalendarConfig `yaml:"calendar" toml:"calendar"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string     `yaml:"host" toml:"host"`
	Port            int        `yaml:"port" toml:"port"`
	ReadTimeout     Duration   `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    Duration   `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout     Duration   `yaml:"idle_timeout" toml:"idle_timeout"`
	ShutdownTimeout Duration   `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	CORS            CORSConfig `yaml:"cors" toml:"cors"`
	DigestUnit      string     `yaml:"digest_unit" toml:"digest_unit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" toml:"allowed_origins"`
}

// StoreConfig selects the timeline store.
type StoreConfig struct {
	Driver string `yaml:"driver" toml:"driver"`
	Path   string `yaml:"path" toml:"path"`
}

// CalendarConfig mirrors moment.Calendar in file-friendly form.
type CalendarConfig struct {
	Zone                   string `yaml:"zone" toml:"zone"`
	FirstDayOfWeek         string `yaml:"first_day_of_week" toml:"first_day_of_week"`
	MinimalDaysInFirstWeek int    `yaml:"minimal_days_in_first_week" toml:"minimal_days_in_first_week"`
	Pattern                string `yaml:"pattern" toml:"pattern"`
}

// Duration wraps time.Duration for YAML and TOML parsing.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{15 * time.Second},
			IdleTimeout:     Duration{60 * time.Second},
			ShutdownTimeout: Duration{30 * time.Second},
			CORS: CORSConfig{
				AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			},
		},
		Store: StoreConfig{
			Driver: DriverSQLite,
			Path:   "moment.db",
		},
		Calendar: CalendarConfig{
			Zone:                   "UTC",
			FirstDayOfWeek:         "sunday",
			MinimalDaysInFirstWeek: 1,
			Pattern:                "yyyy-MM-dd HH:mm:ss.SSS",
		},
	}
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file over Default() and
// validates the result.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err = toml.Decode(string(data), cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) expandEnvVars() {
	c.Store.Path = os.ExpandEnv(c.Store.Path)
	c.Calendar.Zone = os.ExpandEnv(c.Calendar.Zone)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port: %d out of range", c.Server.Port))
	}
	for name, d := range map[string]Duration{
		"read_timeout":     c.Server.ReadTimeout,
		"write_timeout":    c.Server.WriteTimeout,
		"idle_timeout":     c.Server.IdleTimeout,
		"shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if d.Duration < 0 {
			errs = append(errs, fmt.Errorf("server.%s: must not be negative", name))
		}
	}

	if c.Server.DigestUnit != "" {
		if _, err := c.DigestUnit(); err != nil {
			errs = append(errs, fmt.Errorf("server.digest_unit: %w", err))
		}
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.Path == "" {
			errs = append(errs, errors.New("store.path: required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver))
	}

	if _, err := c.location(); err != nil {
		errs = append(errs, fmt.Errorf("calendar.zone: %w", err))
	}
	if _, err := ParseWeekday(c.Calendar.FirstDayOfWeek); err != nil {
		errs = append(errs, fmt.Errorf("calendar.first_day_of_week: %w", err))
	}
	if n := c.Calendar.MinimalDaysInFirstWeek; n < 1 || n > 7 {
		errs = append(errs, fmt.Errorf("calendar.minimal_days_in_first_week: %d not in 1..7", n))
	}
	if _, err := pattern.Compile(c.Calendar.Pattern); err != nil {
		errs = append(errs, fmt.Errorf("calendar.pattern: %w", err))
	}

	return errors.Join(errs...)
}

// DigestUnit returns the unit of the window digest, or zero when none is
// configured.
func (c *Config) DigestUnit() (moment.Unit, error) {
	if c.Server.DigestUnit == "" {
		return 0, nil
	}
	u, err := moment.ParseUnit(c.Server.DigestUnit)
	if err != nil {
		return 0, err
	}
	if !u.Truncatable() {
		return 0, fmt.Errorf("unit %s has no window", u)
	}
	return u, nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MomentCalendar converts the calendar section into a moment.Calendar.
func (c *Config) MomentCalendar() (moment.Calendar, error) {
	loc, err := c.location()
	if err != nil {
		return moment.Calendar{}, err
	}
	first, err := ParseWeekday(c.Calendar.FirstDayOfWeek)
	if err != nil {
		return moment.Calendar{}, err
	}
	return moment.Calendar{
		Location:               loc,
		FirstDayOfWeek:         first,
		MinimalDaysInFirstWeek: c.Calendar.MinimalDaysInFirstWeek,
	}, nil
}

func (c *Config) location() (*time.Location, error) {
	switch c.Calendar.Zone {
	case "", "Local":
		return time.Local, nil
	}
	return time.LoadLocation(c.Calendar.Zone)
}

// ParseWeekday accepts English weekday names or their three letter
// abbreviations, case insensitively. An empty name means Sunday.
func ParseWeekday(name string) (time.Weekday, error) {
	if name == "" {
		return time.Sunday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := d.String()
		if strings.EqualFold(name, full) || strings.EqualFold(name, full[:3]) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", name)
}
