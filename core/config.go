package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"inventory_backend/bootstrap"
	"inventory_backend/hostenv"
	"inventory_backend/logging"
	"inventory_backend/resource"
)

// Environment variable names read by ReadConfig.
const (
	EnvAppID            = "INVENTORY_APP_ID"
	EnvDataRoot         = "INVENTORY_DATA_ROOT"
	EnvTargetRoot       = "INVENTORY_TARGET_ROOT"
	EnvAppSubpath       = "INVENTORY_APP_SUBPATH"
	EnvTargetFile       = "INVENTORY_TARGET_FILE"
	EnvSeedResource     = "INVENTORY_SEED_RESOURCE"
	EnvResourceDir      = "INVENTORY_RESOURCE_DIR"
	EnvResourceManifest = "INVENTORY_RESOURCE_MANIFEST"
	EnvDevMode          = "DEV_MODE"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFile          = "LOG_FILE"
)

// Config holds the launcher's configuration.
type Config struct {
	// Host environment
	AppIdentifier    string // bundle identifier joined onto the platform data dir
	DataRootOverride string // absolute; replaces the platform data root when set

	// Target layout. TargetRootName is the raw setting; Validate parses it
	// into TargetRoot.
	TargetRootName string
	TargetRoot     bootstrap.TargetRoot
	AppSubpath     string
	TargetFileName string

	// Seed resource
	SeedResource     string
	ResourceDir      string
	ResourceManifest string

	// Runtime
	DevMode  bool
	LogLevel zapcore.Level
	LogFile  string
}

// DefaultLogFile returns the log location used when LOG_FILE is unset. It
// lives outside the data root so a broken data directory can still be logged.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "cheonan-inventory", "bootstrap.log")
}

// ReadConfig reads the configuration from the environment without
// validating it, so callers can apply overrides first. Call after godotenv
// has loaded any .env file.
func ReadConfig() *Config {
	devMode := ParseBoolEnv(EnvDevMode, false)

	defaultLevel := zapcore.InfoLevel
	if devMode {
		defaultLevel = zapcore.DebugLevel
	}

	return &Config{
		AppIdentifier:    GetEnvOrDefault(EnvAppID, hostenv.DefaultIdentifier),
		DataRootOverride: strings.TrimSpace(os.Getenv(EnvDataRoot)),
		TargetRootName:   GetEnvOrDefault(EnvTargetRoot, bootstrap.AppPrivate.String()),
		AppSubpath:       GetEnvOrDefault(EnvAppSubpath, bootstrap.DefaultAppSubpath),
		TargetFileName:   GetEnvOrDefault(EnvTargetFile, bootstrap.DefaultTargetFileName),
		SeedResource:     GetEnvOrDefault(EnvSeedResource, bootstrap.DefaultSeedResource),
		ResourceDir:      strings.TrimSpace(os.Getenv(EnvResourceDir)),
		ResourceManifest: strings.TrimSpace(os.Getenv(EnvResourceManifest)),
		DevMode:          devMode,
		LogLevel:         logging.ParseLogLevel(EnvLogLevel, defaultLevel),
		LogFile:          GetEnvOrDefault(EnvLogFile, DefaultLogFile()),
	}
}

// ReadConfigFrom loads envFile into the process environment, then calls
// ReadConfig. Variables already set take precedence over the file.
func ReadConfigFrom(envFile string) (*Config, error) {
	if _, err := os.Stat(envFile); err != nil {
		return nil, ErrEnvFileMissing(envFile)
	}
	if err := godotenv.Load(envFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return ReadConfig(), nil
}

// SetTargetRoot parses and stores a target-root strategy name.
func (c *Config) SetTargetRoot(value string) error {
	tr, err := bootstrap.ParseTargetRoot(value)
	if err != nil {
		return ErrInvalidTargetRoot(value)
	}
	c.TargetRootName = value
	c.TargetRoot = tr
	return nil
}

// Validate parses TargetRootName and checks values that ReadConfig cannot
// default. An empty TargetRootName keeps the current TargetRoot.
func (c *Config) Validate() error {
	if c.TargetRootName != "" {
		if err := c.SetTargetRoot(c.TargetRootName); err != nil {
			return err
		}
	}
	if c.DataRootOverride != "" && !filepath.IsAbs(c.DataRootOverride) {
		return ErrInvalidDataRoot(c.DataRootOverride)
	}
	if err := c.BootstrapOptions().Validate(); err != nil {
		return ErrInvalidLayout(err.Error())
	}
	if c.ResourceManifest != "" {
		if _, err := os.Stat(c.ResourceManifest); err != nil {
			return ErrFileMissing(EnvResourceManifest, c.ResourceManifest)
		}
	}
	return nil
}

// BootstrapOptions returns the bootstrapper options for c.
func (c *Config) BootstrapOptions() bootstrap.Options {
	opts := bootstrap.DefaultOptions()
	opts.Strategy = c.TargetRoot
	opts.AppSubpath = c.AppSubpath
	opts.TargetFileName = c.TargetFileName
	opts.SeedResource = c.SeedResource
	return opts
}

// Environment returns the host environment: the override when set, the
// platform convention otherwise.
func (c *Config) Environment() bootstrap.Environment {
	if c.DataRootOverride != "" {
		return hostenv.Fixed(c.DataRootOverride)
	}
	return hostenv.NewPlatform(c.AppIdentifier)
}

// ResourceSettings returns the locator settings for c.
func (c *Config) ResourceSettings(logger *logging.Logger) resource.Settings {
	return resource.Settings{
		DevMode:     c.DevMode,
		ResourceDir: c.ResourceDir,
		Manifest:    c.ResourceManifest,
		Logger:      logger,
	}
}
