package core

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pwa_icons/pngenc"
)

// Environment variables read by LoadConfig.
const (
	EnvOutputDir        = "ICONS_OUTPUT_DIR"
	EnvSpecFile         = "ICONS_SPEC_FILE"
	EnvCompressionLevel = "ICONS_COMPRESSION_LEVEL"
	EnvConcurrency      = "ICONS_CONCURRENCY"
	EnvManifestFile     = "ICONS_MANIFEST_FILE"
	EnvManifestSrc      = "ICONS_MANIFEST_SRC_PREFIX"
	EnvLedgerPath       = "ICONS_LEDGER_PATH"
	EnvLedgerRetention  = "ICONS_LEDGER_RETENTION_DAYS"
	EnvLogFile          = "ICONS_LOG_FILE"
	EnvLogLevel         = "ICONS_LOG_LEVEL"
	EnvDevMode          = "DEV_MODE"
)

const (
	// DefaultManifestName is created inside the output directory.
	DefaultManifestName = "manifest-icons.json"

	// ManifestDisabled turns off manifest output when used as ICONS_MANIFEST_FILE.
	ManifestDisabled = "none"

	// DefaultLogFile is the rotated JSON log.
	DefaultLogFile = "pwa_icons.log"
)

// Config holds all configuration values
type Config struct {
	// Output
	OutputDir    string // Directory receiving the PNG files
	ManifestFile string // Manifest fragment path; empty when disabled
	ManifestSrc  string // Web path the output directory is served under

	// Icon set
	SpecFile string // Optional YAML icon set; empty uses the default set

	// Encoding
	CompressionLevel int // zlib level, -2..9
	Concurrency      int // Icons generated in parallel

	// Ledger
	LedgerPath          string // SQLite file; empty disables the ledger
	LedgerRetentionDays int    // Records older than this are pruned; 0 keeps all

	// Logging
	LogFile  string
	LogLevel string
	DevMode  bool
}

// LoadConfig reads the configuration from the environment. Callers load a
// .env file beforehand if they want one. Malformed values are reported as
// *ConfigError rather than replaced by defaults.
func LoadConfig() (*Config, error) {
	outputDir := filepath.Clean(GetEnvOrDefault(EnvOutputDir, DefaultOutputDir))

	level, err := ParseIntEnvStrict(EnvCompressionLevel, pngenc.DefaultCompression)
	if err != nil {
		return nil, err
	}
	concurrency, err := ParseIntEnvStrict(EnvConcurrency, 1)
	if err != nil {
		return nil, err
	}
	retention, err := ParseIntEnvStrict(EnvLedgerRetention, 0)
	if err != nil {
		return nil, err
	}

	manifest := strings.TrimSpace(os.Getenv(EnvManifestFile))
	switch {
	case strings.EqualFold(manifest, ManifestDisabled):
		manifest = ""
	case manifest == "":
		manifest = filepath.Join(outputDir, DefaultManifestName)
	}

	// Defaults to the output directory's name, so public/icons is served as icons/.
	manifestSrc := strings.Trim(filepath.ToSlash(strings.TrimSpace(os.Getenv(EnvManifestSrc))), "/")
	if manifestSrc == "" {
		manifestSrc = filepath.Base(outputDir)
	}

	cfg := &Config{
		OutputDir:           outputDir,
		ManifestFile:        manifest,
		ManifestSrc:         manifestSrc,
		SpecFile:            strings.TrimSpace(os.Getenv(EnvSpecFile)),
		CompressionLevel:    level,
		Concurrency:         concurrency,
		LedgerPath:          strings.TrimSpace(os.Getenv(EnvLedgerPath)),
		LedgerRetentionDays: retention,
		LogFile:             GetEnvOrDefault(EnvLogFile, DefaultLogFile),
		LogLevel:            os.Getenv(EnvLogLevel),
		DevMode:             ParseBoolEnv(EnvDevMode, false),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := pngenc.ValidateLevel(c.CompressionLevel); err != nil {
		return ErrInvalidCompressionLevel(c.CompressionLevel, err)
	}
	if c.Concurrency < 1 {
		return ErrInvalidConcurrency(c.Concurrency)
	}
	if c.LedgerRetentionDays < 0 {
		return ErrInvalidValue(EnvLedgerRetention, strconv.Itoa(c.LedgerRetentionDays), "a non-negative number of days")
	}
	return nil
}

// ManifestEnabled reports whether a manifest fragment should be written.
func (c *Config) ManifestEnabled() bool {
	return c.ManifestFile != ""
}

// LedgerEnabled reports whether results are recorded in SQLite.
func (c *Config) LedgerEnabled() bool {
	return c.LedgerPath != ""
}
