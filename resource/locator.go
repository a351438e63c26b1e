// Package resource maps logical seed names to files in the installed payload.
//
// The same logical name resolves differently in a development run (against the
// project tree) and in a packaged install (against the bundle's resource
// directory), and packaging revisions have named the seed either by a
// path-qualified name or by its bare file name. Each mapping is a Locator;
// Chain combines them.
package resource

import (
	"os"
	"path/filepath"
	"strings"

	"inventory_backend/bootstrap"
)

// Func adapts a function to bootstrap.Locator.
type Func func(name string) (string, bool)

func (f Func) Resolve(name string) (string, bool) {
	return f(name)
}

// DirLocator resolves names relative to Root, as a development run does.
// Path-qualified names may climb out of Root with "..".
type DirLocator struct {
	Root string
}

// NewDirLocator returns a DirLocator rooted at root.
func NewDirLocator(root string) *DirLocator {
	return &DirLocator{Root: root}
}

func (d *DirLocator) Resolve(name string) (string, bool) {
	rel, ok := cleanName(name)
	if !ok || d.Root == "" {
		return "", false
	}
	return regularFile(filepath.Join(d.Root, rel))
}

// BundleLocator resolves names inside a packaged install. The bundler copies
// a resource declared as "../public/database.json" to "_up_/public/database.json"
// under the resource directory, so each leading ".." becomes "_up_".
type BundleLocator struct {
	Root string
}

// NewBundleLocator returns a BundleLocator rooted at the install's resource dir.
func NewBundleLocator(root string) *BundleLocator {
	return &BundleLocator{Root: root}
}

// UpDirName replaces ".." segments in packaged resource paths.
const UpDirName = "_up_"

func (b *BundleLocator) Resolve(name string) (string, bool) {
	rel, ok := cleanName(name)
	if !ok || b.Root == "" {
		return "", false
	}
	return regularFile(filepath.Join(b.Root, BundlePath(rel)))
}

// BundlePath rewrites the ".." segments of a relative resource path the way
// the bundler lays them out.
func BundlePath(rel string) string {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i, p := range parts {
		if p == ".." {
			parts[i] = UpDirName
		}
	}
	return filepath.FromSlash(strings.Join(parts, "/"))
}

// Chain tries each locator in order; the first hit wins.
type Chain []bootstrap.Locator

func (c Chain) Resolve(name string) (string, bool) {
	for _, l := range c {
		if l == nil {
			continue
		}
		if p, ok := l.Resolve(name); ok {
			return p, true
		}
	}
	return "", false
}

// cleanName normalizes a logical name. Absolute and empty names have no
// mapping.
func cleanName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	native := filepath.FromSlash(name)
	if filepath.IsAbs(native) || filepath.VolumeName(native) != "" || strings.HasPrefix(name, "/") {
		return "", false
	}
	rel := filepath.Clean(native)
	if rel == "." {
		return "", false
	}
	return rel, true
}

// regularFile returns the absolute form of path when it names a regular file.
func regularFile(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return abs, true
}
