package core

import (
	"errors"
	"fmt"
)

// ConfigError is a configuration problem with an instruction for fixing it.
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
	ErrCodeEnvFileMissing    = "ENV_FILE_MISSING"
	ErrCodeInvalidTargetRoot = "INVALID_TARGET_ROOT"
	ErrCodeInvalidDataRoot   = "INVALID_DATA_ROOT"
	ErrCodeInvalidLayout     = "INVALID_LAYOUT"
	ErrCodeFileMissing       = "FILE_MISSING"
)

// ErrEnvFileMissing returns an error for an explicitly requested .env file
// that does not exist.
func ErrEnvFileMissing(path string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeEnvFileMissing,
		Message: fmt.Sprintf("Configuration file not found: %s", path),
		Action:  "Pass an existing file to --env-file or omit the flag",
	}
}

// ErrInvalidTargetRoot returns an error for an unknown target-root strategy.
func ErrInvalidTargetRoot(value string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidTargetRoot,
		Message: fmt.Sprintf("Invalid %s '%s'", EnvTargetRoot, value),
		Action:  fmt.Sprintf("Set %s to app-private or shared-parent", EnvTargetRoot),
	}
}

// ErrInvalidDataRoot returns an error for a relative data root override.
func ErrInvalidDataRoot(value string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidDataRoot,
		Message: fmt.Sprintf("%s must be an absolute path, got '%s'", EnvDataRoot, value),
		Action:  fmt.Sprintf("Set %s to an absolute directory or unset it to use the platform default", EnvDataRoot),
	}
}

// ErrInvalidLayout returns an error for target layout settings that would
// place the data file outside the data root.
func ErrInvalidLayout(reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidLayout,
		Message: fmt.Sprintf("Invalid data file layout: %s", reason),
		Action:  fmt.Sprintf("Check %s, %s and %s", EnvAppSubpath, EnvTargetFile, EnvSeedResource),
	}
}

// ErrFileMissing returns an error for a configured file that does not exist.
func ErrFileMissing(varName, path string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeFileMissing,
		Message: fmt.Sprintf("%s points to a missing file: %s", varName, path),
		Action:  fmt.Sprintf("Fix or unset %s", varName),
	}
}

// IsConfigError checks if an error is a ConfigError and returns it if so
func IsConfigError(err error) (*ConfigError, bool) {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error if it's a ConfigError
func GetErrorCode(err error) string {
	if configErr, ok := IsConfigError(err); ok {
		return configErr.Code
	}
	return ""
}
