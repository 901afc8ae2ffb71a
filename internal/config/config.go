// Package config provides configuration management for the ClipChop agent.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// Default values
	DefaultPort     = 8707
	DefaultLogLevel = "info"
	DefaultDataDir  = ".clipchop"

	// Environment variable names
	EnvPort     = "CLIPCHOP_PORT"
	EnvLogLevel = "CLIPCHOP_LOG_LEVEL"
	EnvDataDir  = "CLIPCHOP_DATA_DIR"
	EnvHeadless = "CLIPCHOP_HEADLESS"

	// Encoder environment variable names
	EnvFFmpegBin      = "CLIPCHOP_FFMPEG"
	EnvPollIntervalMS = "CLIPCHOP_POLL_INTERVAL_MS"
	EnvMinFreeDiskMB  = "CLIPCHOP_MIN_FREE_DISK_MB"

	// Database filename
	DBFilename = "clipchop.db"

	// Encoder defaults
	DefaultFFmpegBin      = "ffmpeg"
	DefaultPollIntervalMS = 120
	DefaultMinFreeDiskMB  = 200
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	Headless() bool
	FFmpegBin() string
	PollInterval() time.Duration
	MinFreeDiskBytes() uint64
}

// EnvConfig reads configuration from environment variables
type EnvConfig struct {
	port           int
	logLevel       string
	dataDir        string
	headless       bool
	ffmpegBin      string
	pollIntervalMS int
	minFreeDiskMB  int
}

// New creates a new EnvConfig with defaults and environment variable overrides
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		port:           DefaultPort,
		logLevel:       DefaultLogLevel,
		dataDir:        defaultDataDir(),
		ffmpegBin:      DefaultFFmpegBin,
		pollIntervalMS: DefaultPollIntervalMS,
		minFreeDiskMB:  DefaultMinFreeDiskMB,
	}

	// Override port from environment
	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}

	// Override log level from environment
	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}

	// Override data directory from environment
	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	if h := os.Getenv(EnvHeadless); h == "1" || h == "true" {
		cfg.headless = true
	}

	if bin := os.Getenv(EnvFFmpegBin); bin != "" {
		cfg.ffmpegBin = bin
	}

	if pi := os.Getenv(EnvPollIntervalMS); pi != "" {
		ms, err := strconv.Atoi(pi)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPollIntervalMS, err)
		}
		if ms < 1 {
			return nil, fmt.Errorf("invalid %s: interval must be positive", EnvPollIntervalMS)
		}
		cfg.pollIntervalMS = ms
	}

	if mf := os.Getenv(EnvMinFreeDiskMB); mf != "" {
		mb, err := strconv.Atoi(mf)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvMinFreeDiskMB, err)
		}
		if mb < 0 {
			return nil, fmt.Errorf("invalid %s: size must not be negative", EnvMinFreeDiskMB)
		}
		cfg.minFreeDiskMB = mb
	}

	return cfg, nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// Headless reports whether the system tray should be disabled
func (c *EnvConfig) Headless() bool {
	return c.headless
}

// FFmpegBin returns the encoder binary name or path
func (c *EnvConfig) FFmpegBin() string {
	return c.ffmpegBin
}

// PollInterval returns the interval between encoder exit checks
func (c *EnvConfig) PollInterval() time.Duration {
	return time.Duration(c.pollIntervalMS) * time.Millisecond
}

// MinFreeDiskBytes returns the free-space threshold for the output
// directory preflight warning. Zero disables the check.
func (c *EnvConfig) MinFreeDiskBytes() uint64 {
	return uint64(c.minFreeDiskMB) * 1024 * 1024
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
