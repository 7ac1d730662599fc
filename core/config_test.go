package core

import (
	"errors"
	"path/filepath"
	"testing"
)

func clearIconEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvOutputDir, EnvSpecFile, EnvCompressionLevel, EnvConcurrency,
		EnvManifestFile, EnvManifestSrc, EnvLedgerPath, EnvLedgerRetention, EnvLogFile, EnvLogLevel, EnvDevMode,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearIconEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.OutputDir != filepath.Clean(DefaultOutputDir) {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, DefaultOutputDir)
	}
	if want := filepath.Join(DefaultOutputDir, DefaultManifestName); cfg.ManifestFile != want {
		t.Errorf("ManifestFile = %q, want %q", cfg.ManifestFile, want)
	}
	if cfg.CompressionLevel != -1 {
		t.Errorf("CompressionLevel = %d, want -1", cfg.CompressionLevel)
	}
	if cfg.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want 1", cfg.Concurrency)
	}
	if cfg.LogFile != DefaultLogFile {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, DefaultLogFile)
	}
	if cfg.LedgerEnabled() {
		t.Error("ledger should be disabled by default")
	}
	if cfg.DevMode {
		t.Error("DevMode should default to false")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearIconEnv(t)
	dir := t.TempDir()
	t.Setenv(EnvOutputDir, dir)
	t.Setenv(EnvCompressionLevel, "9")
	t.Setenv(EnvConcurrency, "4")
	t.Setenv(EnvLedgerPath, filepath.Join(dir, "ledger.db"))
	t.Setenv(EnvLedgerRetention, "90")
	t.Setenv(EnvSpecFile, "icons.yaml")
	t.Setenv(EnvDevMode, "yes")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.OutputDir != dir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, dir)
	}
	if cfg.ManifestFile != filepath.Join(dir, DefaultManifestName) {
		t.Errorf("ManifestFile = %q", cfg.ManifestFile)
	}
	if cfg.CompressionLevel != 9 || cfg.Concurrency != 4 {
		t.Errorf("level/concurrency = %d/%d, want 9/4", cfg.CompressionLevel, cfg.Concurrency)
	}
	if !cfg.LedgerEnabled() || cfg.LedgerRetentionDays != 90 {
		t.Errorf("ledger = %q retention %d, want enabled with 90 days", cfg.LedgerPath, cfg.LedgerRetentionDays)
	}
	if cfg.SpecFile != "icons.yaml" {
		t.Errorf("SpecFile = %q", cfg.SpecFile)
	}
	if !cfg.DevMode {
		t.Error("DevMode should be true")
	}
}

func TestLoadConfig_ManifestDisabled(t *testing.T) {
	clearIconEnv(t)
	t.Setenv(EnvManifestFile, "NONE")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ManifestEnabled() {
		t.Errorf("ManifestFile = %q, want disabled", cfg.ManifestFile)
	}
}

func TestLoadConfig_ManifestSrc(t *testing.T) {
	tests := []struct {
		name      string
		outputDir string
		src       string
		want      string
	}{
		{"default dir", "", "", "icons"},
		{"custom dir", "web/static/img", "", "img"},
		{"explicit", "web/static/img", "static/img", "static/img"},
		{"slashes trimmed", "", "/assets/icons/", "assets/icons"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearIconEnv(t)
			t.Setenv(EnvOutputDir, tt.outputDir)
			t.Setenv(EnvManifestSrc, tt.src)

			cfg, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if cfg.ManifestSrc != tt.want {
				t.Errorf("ManifestSrc = %q, want %q", cfg.ManifestSrc, tt.want)
			}
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		wantCode string
	}{
		{"non-numeric level", EnvCompressionLevel, "fast", ErrCodeInvalidValue},
		{"level too high", EnvCompressionLevel, "10", ErrCodeInvalidCompressionLevel},
		{"level too low", EnvCompressionLevel, "-3", ErrCodeInvalidCompressionLevel},
		{"non-numeric concurrency", EnvConcurrency, "many", ErrCodeInvalidValue},
		{"zero concurrency", EnvConcurrency, "0", ErrCodeInvalidConcurrency},
		{"negative retention", EnvLedgerRetention, "-7", ErrCodeInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearIconEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			if err == nil {
				t.Fatal("LoadConfig() expected error")
			}
			if got := GetErrorCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestEnsureOutputDirectory(t *testing.T) {
	base := t.TempDir()
	want := filepath.Join(base, "public", "icons")

	got, err := EnsureOutputDirectory(want + string(filepath.Separator))
	if err != nil {
		t.Fatalf("EnsureOutputDirectory() error = %v", err)
	}
	if got != want {
		t.Errorf("EnsureOutputDirectory() = %q, want %q", got, want)
	}

	// Existing directory is fine.
	if _, err := EnsureOutputDirectory(want); err != nil {
		t.Errorf("second call error = %v", err)
	}

	if p := OutputFilePath(got, "icon-192.png"); p != filepath.Join(want, "icon-192.png") {
		t.Errorf("OutputFilePath() = %q", p)
	}
}

func TestEnsureOutputDirectory_BlockedByFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	if err := writeTestFile(blocker, []byte("x")); err != nil {
		t.Fatal(err)
	}

	_, err := EnsureOutputDirectory(filepath.Join(blocker, "icons"))
	if GetErrorCode(err) != ErrCodeOutputDirUnusable {
		t.Errorf("error = %v, want %s", err, ErrCodeOutputDirUnusable)
	}
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Error("expected *ConfigError")
	}
}
