// Package hostenv locates the per-user writable data root for the application.
package hostenv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultIdentifier is the bundle identifier of the packaged application. The
// data root is the platform data directory joined with it.
const DefaultIdentifier = "com.cheonan.inventory"

// ErrNoDataDir is returned when neither the platform variables nor the home
// directory give a usable location.
var ErrNoDataDir = errors.New("cannot determine per-user data directory")

// Platform resolves the data root by platform convention:
//
//   - Linux/BSD: $XDG_DATA_HOME/<id>, or ~/.local/share/<id>
//   - macOS:     ~/Library/Application Support/<id>
//   - Windows:   %APPDATA%\<id>, or ~\AppData\Roaming\<id>
//
// Nothing is created on disk.
type Platform struct {
	Identifier string

	goos    string
	getenv  func(string) string
	homeDir func() (string, error)
}

// NewPlatform returns a Platform for the running OS. An empty identifier
// selects DefaultIdentifier.
func NewPlatform(identifier string) *Platform {
	if identifier == "" {
		identifier = DefaultIdentifier
	}
	return &Platform{
		Identifier: identifier,
		goos:       runtime.GOOS,
		getenv:     os.Getenv,
		homeDir:    os.UserHomeDir,
	}
}

// DataRoot implements bootstrap.Environment.
func (p *Platform) DataRoot() (string, error) {
	id := strings.TrimSpace(p.Identifier)
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid application identifier %q", p.Identifier)
	}

	base, err := p.dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, id), nil
}

func (p *Platform) dataDir() (string, error) {
	switch p.goos {
	case "windows":
		if appData := p.getenv("APPDATA"); filepath.IsAbs(appData) {
			return appData, nil
		}
		home, err := p.home()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	case "darwin", "ios":
		home, err := p.home()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		// Relative XDG paths are invalid per the basedir spec and are ignored.
		if xdg := p.getenv("XDG_DATA_HOME"); filepath.IsAbs(xdg) {
			return xdg, nil
		}
		home, err := p.home()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

func (p *Platform) home() (string, error) {
	home, err := p.homeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDataDir, err)
	}
	if !filepath.IsAbs(home) {
		return "", fmt.Errorf("%w: home directory %q is not absolute", ErrNoDataDir, home)
	}
	return home, nil
}

// Fixed is a data root chosen up front, e.g. from INVENTORY_DATA_ROOT.
type Fixed string

// DataRoot implements bootstrap.Environment. Relative values are rejected by
// the bootstrapper, not here.
func (f Fixed) DataRoot() (string, error) {
	if strings.TrimSpace(string(f)) == "" {
		return "", errors.New("data root override is empty")
	}
	return string(f), nil
}
