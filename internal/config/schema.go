package config

import "time"

// Config is the top-level shelflog configuration.
type Config struct {
	API   APIConfig   `mapstructure:"api" yaml:"api"`
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`
	Log   LogConfig   `mapstructure:"log" yaml:"log"`
	UI    UIConfig    `mapstructure:"ui" yaml:"ui"`
	Dev   DevConfig   `mapstructure:"dev" yaml:"dev"`
}

// APIConfig holds reading-log service connection settings.
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url" yaml:"base_url"`
	TokenEnv   string        `mapstructure:"token_env" yaml:"token_env"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RatePerSec float64       `mapstructure:"rate_per_sec" yaml:"rate_per_sec"`
	Token      string        `mapstructure:"-" yaml:"-"` // resolved at runtime, never written
}

// CacheConfig locates the cover image cache.
type CacheConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig controls the log file. The TUI owns the terminal, so logs never
// go to stdout while it runs.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// UIConfig tunes the interactive views.
type UIConfig struct {
	// CellWidthPx converts terminal columns to an approximate pixel width
	// for the page size breakpoint.
	CellWidthPx      int `mapstructure:"cell_width_px" yaml:"cell_width_px"`
	BreakpointPx     int `mapstructure:"breakpoint_px" yaml:"breakpoint_px"`
	PaginationWindow int `mapstructure:"pagination_window" yaml:"pagination_window"`
}

// DevConfig holds settings for the bundled development backend.
type DevConfig struct {
	Addr   string `mapstructure:"addr" yaml:"addr"`
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
	Secret string `mapstructure:"secret" yaml:"secret"`
	UserID int64  `mapstructure:"user_id" yaml:"user_id"`
}

// EffectiveTokenEnv returns the env var holding the API token.
func (a APIConfig) EffectiveTokenEnv() string {
	if a.TokenEnv != "" {
		return a.TokenEnv
	}
	return "SHELFLOG_TOKEN"
}

// WidthPx converts a terminal width in columns to pixels.
func (u UIConfig) WidthPx(cols int) int {
	cell := u.CellWidthPx
	if cell <= 0 {
		cell = 8
	}
	return cols * cell
}

// EffectiveBreakpoint returns the compact page size breakpoint in pixels.
func (u UIConfig) EffectiveBreakpoint() int {
	if u.BreakpointPx > 0 {
		return u.BreakpointPx
	}
	return 768
}

// EffectivePaginationWindow returns how many page numbers the pager shows.
func (u UIConfig) EffectivePaginationWindow() int {
	if u.PaginationWindow > 0 {
		return u.PaginationWindow
	}
	return 5
}
