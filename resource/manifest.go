package resource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultManifestName is looked up next to the packaged resources.
const DefaultManifestName = "resources.yaml"

// Manifest lists the resources shipped with an install. Paths are relative to
// Base, which is itself relative to the manifest file's directory.
//
//	version: 1
//	base: .
//	resources:
//	  - name: database.json
//	    path: _up_/public/database.json
//	    aliases: ["../public/database.json"]
type Manifest struct {
	Version   int             `yaml:"version"`
	Base      string          `yaml:"base"`
	Resources []ManifestEntry `yaml:"resources"`
}

// ManifestEntry maps a logical name, and any aliases, to one file.
type ManifestEntry struct {
	Name    string   `yaml:"name"`
	Path    string   `yaml:"path"`
	Aliases []string `yaml:"aliases,omitempty"`
}

// ManifestLocator resolves names through a Manifest.
type ManifestLocator struct {
	dir   string
	paths map[string]string
}

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (*ManifestLocator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource manifest: %w", err)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest directory: %w", err)
	}
	loc, err := ParseManifest(data, abs)
	if err != nil {
		return nil, fmt.Errorf("resource manifest %s: %w", path, err)
	}
	return loc, nil
}

// ParseManifest decodes a manifest whose relative paths are anchored at dir.
// Unknown keys are rejected so typos do not silently drop a mapping.
func ParseManifest(data []byte, dir string) (*ManifestLocator, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("manifest is empty")
		}
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	if m.Version < 0 || m.Version > 1 {
		return nil, fmt.Errorf("unsupported manifest version %d", m.Version)
	}

	base := dir
	if m.Base != "" {
		if filepath.IsAbs(m.Base) {
			base = m.Base
		} else {
			base = filepath.Join(dir, filepath.FromSlash(m.Base))
		}
	}

	loc := &ManifestLocator{dir: base, paths: make(map[string]string)}
	for i, e := range m.Resources {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("resources[%d]: name is required", i)
		}
		if strings.TrimSpace(e.Path) == "" {
			return nil, fmt.Errorf("resource %q: path is required", e.Name)
		}
		for _, n := range append([]string{e.Name}, e.Aliases...) {
			key := manifestKey(n)
			if _, dup := loc.paths[key]; dup {
				return nil, fmt.Errorf("resource name %q is declared twice", n)
			}
			loc.paths[key] = e.Path
		}
	}
	return loc, nil
}

// Names returns the number of names (including aliases) the manifest maps.
func (m *ManifestLocator) Names() int {
	return len(m.paths)
}

func (m *ManifestLocator) Resolve(name string) (string, bool) {
	p, ok := m.paths[manifestKey(name)]
	if !ok {
		return "", false
	}
	native := filepath.FromSlash(p)
	if !filepath.IsAbs(native) {
		native = filepath.Join(m.dir, native)
	}
	return regularFile(native)
}

func manifestKey(name string) string {
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(strings.TrimSpace(name))))
}
