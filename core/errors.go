package core

import (
	"errors"
	"fmt"
)

// ConfigError represents a configuration-related error with actionable instructions.
type ConfigError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable error message
	Action  string // Actionable instruction for resolution
}

func (e *ConfigError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

// Error codes for configuration errors
const (
	ErrCodeInvalidValue            = "INVALID_VALUE"
	ErrCodeInvalidCompressionLevel = "INVALID_COMPRESSION_LEVEL"
	ErrCodeInvalidConcurrency      = "INVALID_CONCURRENCY"
	ErrCodeSpecFileUnreadable      = "SPEC_FILE_UNREADABLE"
	ErrCodeSpecFileInvalid         = "SPEC_FILE_INVALID"
	ErrCodeDuplicateIcon           = "DUPLICATE_ICON"
	ErrCodeInvalidIconSize         = "INVALID_ICON_SIZE"
	ErrCodeConflictingIconSize     = "CONFLICTING_ICON_SIZE"
	ErrCodeInvalidIconName         = "INVALID_ICON_NAME"
	ErrCodeOutputDirUnusable       = "OUTPUT_DIR_UNUSABLE"
	ErrCodeLedgerNotConfigured     = "LEDGER_NOT_CONFIGURED"
)

// ErrInvalidValue returns an error for an environment variable that does not parse.
func ErrInvalidValue(varName, value, want string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidValue,
		Message: fmt.Sprintf("Invalid value for %s: %q is not %s", varName, value, want),
		Action:  fmt.Sprintf("Set %s to %s or remove it to use the default", varName, want),
	}
}

// ErrInvalidCompressionLevel returns an error for a zlib level out of range.
func ErrInvalidCompressionLevel(level int, cause error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidCompressionLevel,
		Message: fmt.Sprintf("Invalid ICONS_COMPRESSION_LEVEL %d: %v", level, cause),
		Action:  "Set ICONS_COMPRESSION_LEVEL between -2 (Huffman only) and 9 (best), or -1 for the zlib default",
	}
}

// ErrInvalidConcurrency returns an error for a non-positive worker count.
func ErrInvalidConcurrency(n int) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidConcurrency,
		Message: fmt.Sprintf("Invalid ICONS_CONCURRENCY %d", n),
		Action:  "Set ICONS_CONCURRENCY to 1 or more",
	}
}

// ErrSpecFileUnreadable returns an error when the icon set file cannot be read.
func ErrSpecFileUnreadable(path string, cause error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeSpecFileUnreadable,
		Message: fmt.Sprintf("Cannot read icon set file %s: %v", path, cause),
		Action:  "Check ICONS_SPEC_FILE points to an existing YAML file",
	}
}

// ErrSpecFileInvalid returns an error when the icon set file is not valid YAML.
func ErrSpecFileInvalid(path string, cause error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeSpecFileInvalid,
		Message: fmt.Sprintf("Invalid icon set file %s: %v", path, cause),
		Action:  "Fix the YAML syntax; each icon needs name, width and height",
	}
}

// ErrDuplicateIcon returns an error for two icons writing the same file.
func ErrDuplicateIcon(name string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeDuplicateIcon,
		Message: fmt.Sprintf("Icon %q is listed more than once", name),
		Action:  "Give every icon in the set a unique file name",
	}
}

// ErrInvalidIconSize returns an error for non-positive icon dimensions.
func ErrInvalidIconSize(name string, width, height int) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidIconSize,
		Message: fmt.Sprintf("Icon %q has invalid size %dx%d", name, width, height),
		Action:  "Width and height must both be positive",
	}
}

// ErrConflictingIconSize returns an error for an icon that sets size
// together with width or height.
func ErrConflictingIconSize(name string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeConflictingIconSize,
		Message: fmt.Sprintf("Icon %q sets size together with width or height", name),
		Action:  "Use size for square icons, or width and height, not both",
	}
}

// ErrInvalidIconName returns an error for an empty or path-like icon name.
func ErrInvalidIconName(name string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidIconName,
		Message: fmt.Sprintf("Invalid icon name %q", name),
		Action:  "Use a plain file name such as icon-192.png",
	}
}

// ErrOutputDirUnusable returns an error when the output directory cannot be created.
func ErrOutputDirUnusable(dir string, cause error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeOutputDirUnusable,
		Message: fmt.Sprintf("Cannot create output directory %s: %v", dir, cause),
		Action:  "Check ICONS_OUTPUT_DIR and the permissions of its parent directory",
	}
}

// ErrLedgerNotConfigured returns an error for ledger commands run without
// a ledger path.
func ErrLedgerNotConfigured() *ConfigError {
	return &ConfigError{
		Code:    ErrCodeLedgerNotConfigured,
		Message: "No generation ledger is configured",
		Action:  "Set " + EnvLedgerPath + " to the SQLite file written by generate",
	}
}

// IsConfigError checks if an error is, or wraps, a ConfigError and returns it if so
func IsConfigError(err error) (*ConfigError, bool) {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr, true
	}
	return nil, false
}

// GetErrorCode returns the ConfigError code of err, or "" for other errors.
func GetErrorCode(err error) string {
	if configErr, ok := IsConfigError(err); ok {
		return configErr.Code
	}
	return ""
}
