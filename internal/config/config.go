// Package config loads dash settings from a TOML file in the XDG config
// directory. A missing file yields the defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/idilsaglam/dash/internal/logging"
	"github.com/idilsaglam/dash/internal/taskstore"
)

// ThemeNames lists the built-in UI themes.
var ThemeNames = []string{"classic", "neon", "mono"}

const (
	// AppName is the application directory name.
	AppName = "dash"

	// FileName is the config file name inside the config directory.
	FileName = "config.toml"

	// EnvConfig points at an explicit config file.
	EnvConfig = "DASH_CONFIG"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the full dash configuration.
type Config struct {
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
	UI      UI      `toml:"ui"`
	Widgets Widgets `toml:"widgets"`
}

// Storage selects where the task list is persisted.
type Storage struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Key     string `toml:"key"`
}

// Log configures the slog output.
type Log struct {
	Level string `toml:"level"`
	// File is the log destination. "-" means stderr; empty means <dir>/dash.log.
	File string `toml:"file"`
}

// UI configures terminal rendering.
type UI struct {
	Theme string `toml:"theme"`
	Color string `toml:"color"` // auto | always | never
}

// Widgets configures the display widgets.
type Widgets struct {
	Timeout         Duration `toml:"timeout"`
	RefreshInterval Duration `toml:"refresh_interval"`
	MaxStale        Duration `toml:"max_stale"`
	Rates           Rates    `toml:"rates"`
	Location        Location `toml:"location"`
}

// Rates configures the currency rates widget.
type Rates struct {
	URL         string `toml:"url"`
	Date        string `toml:"date"`
	FallbackUSD string `toml:"fallback_usd"`
	FallbackEUR string `toml:"fallback_eur"`
}

// Location configures the map widget. When both coordinates are set the IP
// lookup is skipped.
type Location struct {
	Latitude  *float64 `toml:"latitude,omitempty"`
	Longitude *float64 `toml:"longitude,omitempty"`
	LookupURL string   `toml:"lookup_url"`
}

// Fixed reports whether coordinates are configured.
func (l Location) Fixed() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Duration is a time.Duration written as a Go duration string ("5s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", string(b), err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: Storage{
			Backend: BackendFile,
			Dir:     DefaultDataDir(),
			Key:     taskstore.DefaultKey,
		},
		Log: Log{Level: "info"},
		UI:  UI{Theme: "classic", Color: "auto"},
		Widgets: Widgets{
			Timeout:         Duration{5 * time.Second},
			RefreshInterval: Duration{10 * time.Minute},
			MaxStale:        Duration{time.Hour},
			Rates: Rates{
				URL:         "https://api.worldbank.org/v2/country/all/indicator/PA.NUS.FCRF",
				Date:        "2025",
				FallbackUSD: "78.600",
				FallbackEUR: "89.791",
			},
			Location: Location{LookupURL: "https://ipapi.co/json/"},
		},
	}
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/dash or ~/.config/dash.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultDataDir returns $XDG_DATA_HOME/dash or ~/.local/share/dash.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// DefaultPath returns the config file path, honoring DASH_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(DefaultConfigDir(), FileName)
}

// Load reads path over the defaults. An empty path means DefaultPath. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.UI.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode %q", c.UI.Color)
	}
	if !slices.Contains(ThemeNames, strings.ToLower(c.UI.Theme)) {
		return fmt.Errorf("unknown theme %q (want one of %s)", c.UI.Theme, strings.Join(ThemeNames, ", "))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return errors.New("storage key must not be empty")
	}
	if c.Widgets.Timeout.Duration <= 0 {
		return errors.New("widgets timeout must be positive")
	}
	return nil
}

// LogPath resolves where log output goes. "-" means stderr. The memory
// backend touches no disk, so without an explicit file its logs are
// discarded.
func (c *Config) LogPath() string {
	switch {
	case c.Log.File != "":
		return c.Log.File
	case c.Storage.Backend == BackendMemory:
		return logging.Off
	}
	return filepath.Join(c.Storage.Dir, AppName+".log")
}

// DatabasePath is the sqlite file used by the sqlite backend.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Storage.Dir, AppName+".db")
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
