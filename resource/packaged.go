package resource

import (
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"inventory_backend/bootstrap"
	"inventory_backend/logging"
)

// PackagedDir returns the resource directory of an install whose executable
// is exe: Contents/Resources for a macOS app bundle, the executable's own
// directory elsewhere.
func PackagedDir(exe string) string {
	return packagedDir(exe, runtime.GOOS)
}

func packagedDir(exe, goos string) string {
	dir := filepath.Dir(exe)
	if goos == "darwin" && filepath.Base(dir) == "MacOS" && filepath.Base(filepath.Dir(dir)) == "Contents" {
		return filepath.Join(filepath.Dir(dir), "Resources")
	}
	return dir
}

// Settings selects the locators Default builds.
type Settings struct {
	// DevMode resolves against DevRoot instead of the packaged layout.
	DevMode bool
	DevRoot string

	// ResourceDir is an explicit directory searched before the default one.
	ResourceDir string

	// Manifest is a YAML manifest consulted first, if set.
	Manifest string

	// Executable overrides os.Executable, for tests.
	Executable string

	// Logger receives debug output about the chain. Nil discards it.
	Logger *logging.Logger
}

// Default builds the locator chain for s: manifest, explicit directory, then
// either the development tree or the packaged layout (with an auto-detected
// resources.yaml beside it).
func Default(s Settings) (Chain, error) {
	var chain Chain
	log := s.Logger
	if log == nil {
		log = logging.NewNop()
	}

	if s.Manifest != "" {
		m, err := loadManifest(s.Manifest, log)
		if err != nil {
			return nil, err
		}
		chain = append(chain, m)
	}

	if s.ResourceDir != "" {
		chain = append(chain, NewBundleLocator(s.ResourceDir), NewDirLocator(s.ResourceDir))
	}

	if s.DevMode {
		root := s.DevRoot
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			root = wd
		}
		return append(chain, NewDirLocator(root)), nil
	}

	exe := s.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			return nil, err
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
	}
	dir := PackagedDir(exe)

	if s.Manifest == "" {
		auto := filepath.Join(dir, DefaultManifestName)
		if _, err := os.Stat(auto); err == nil {
			m, err := loadManifest(auto, log)
			if err != nil {
				return nil, err
			}
			chain = append(chain, m)
		}
	}

	return append(chain, NewBundleLocator(dir)), nil
}

func loadManifest(path string, log *logging.Logger) (*ManifestLocator, error) {
	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded resource manifest",
		zap.String("manifest", path),
		zap.Int("names", m.Names()),
	)
	return m, nil
}

var _ bootstrap.Locator = Chain(nil)
