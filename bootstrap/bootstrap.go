// Package bootstrap makes sure the per-user copy of the inventory database
// exists before the rest of the application starts.
//
// On first launch the Bootstrapper creates the data directory chain and copies
// the read-only seed bundled with the install into it. Once the copy exists it
// is never touched again: its presence is the only signal that the data
// directory has been initialized, and its contents are never read.
package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"inventory_backend/logging"
)

// Environment yields the absolute per-user writable root for application data.
type Environment interface {
	DataRoot() (string, error)
}

// Locator resolves a logical resource name to an absolute, read-only path in
// the installed payload. ok is false when the name has no mapping.
type Locator interface {
	Resolve(name string) (path string, ok bool)
}

// Defaults used when the corresponding Options field is empty.
const (
	DefaultAppSubpath     = "CheonanInventory"
	DefaultTargetFileName = "database.json"
	DefaultSeedResource   = "database.json"
	DefaultDirPerm        = os.FileMode(0o755)
	DefaultFilePerm       = os.FileMode(0o644)
)

// Options configures where the target file lives and which seed it comes from.
type Options struct {
	// Strategy selects the target directory relative to the data root.
	Strategy TargetRoot

	// AppSubpath is the application-private directory under the data root.
	// Only used with AppPrivate. May be nested ("vendor/app").
	AppSubpath string

	// TargetFileName is the bare file name of the user-writable copy.
	TargetFileName string

	// SeedResource is the logical name handed to the Locator, either a bare
	// file name or a path-qualified name such as "../public/database.json".
	SeedResource string

	DirPerm  os.FileMode
	FilePerm os.FileMode
}

// DefaultOptions returns Options with every field set to its default.
func DefaultOptions() Options {
	return Options{
		Strategy:       AppPrivate,
		AppSubpath:     DefaultAppSubpath,
		TargetFileName: DefaultTargetFileName,
		SeedResource:   DefaultSeedResource,
		DirPerm:        DefaultDirPerm,
		FilePerm:       DefaultFilePerm,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Strategy == 0 {
		o.Strategy = d.Strategy
	}
	if o.AppSubpath == "" {
		o.AppSubpath = d.AppSubpath
	}
	if o.TargetFileName == "" {
		o.TargetFileName = d.TargetFileName
	}
	if o.SeedResource == "" {
		o.SeedResource = d.SeedResource
	}
	if o.DirPerm == 0 {
		o.DirPerm = d.DirPerm
	}
	if o.FilePerm == 0 {
		o.FilePerm = d.FilePerm
	}
	return o
}

// Validate checks that the options describe a target inside the data root.
func (o Options) Validate() error {
	if !o.Strategy.Valid() {
		return fmt.Errorf("invalid target-root strategy %d", o.Strategy)
	}
	name := o.TargetFileName
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("target file name %q must be a bare file name", name)
	}
	if o.Strategy == AppPrivate {
		sub := filepath.Clean(filepath.FromSlash(o.AppSubpath))
		if filepath.IsAbs(sub) || filepath.VolumeName(sub) != "" {
			return fmt.Errorf("app subpath %q must be relative", o.AppSubpath)
		}
		if sub == "." || sub == ".." || strings.HasPrefix(sub, ".."+string(filepath.Separator)) {
			return fmt.Errorf("app subpath %q must name a directory below the data root", o.AppSubpath)
		}
	}
	if strings.TrimSpace(o.SeedResource) == "" {
		return errors.New("seed resource name cannot be empty")
	}
	return nil
}

// TargetDir returns the directory holding the target file for dataRoot.
func (o Options) TargetDir(dataRoot string) string {
	if o.Strategy == SharedParent {
		return dataRoot
	}
	return filepath.Join(dataRoot, filepath.FromSlash(o.AppSubpath))
}

// Result describes a successful Initialize.
type Result struct {
	DataRoot   string
	TargetDir  string
	TargetPath string

	// Created is true only on the run that wrote the target file.
	Created bool

	// Set when Created.
	SeedPath string
	Bytes    int64
	Checksum string
}

// Bootstrapper performs the first-run copy. It holds no state between calls;
// calling Initialize again after a success is a no-op.
type Bootstrapper struct {
	env     Environment
	locator Locator
	opts    Options
	logger  *logging.Logger

	// wrapSource lets tests interpose on the seed reader.
	wrapSource func(r io.Reader) io.Reader
}

// New creates a Bootstrapper. Empty Options fields take their defaults.
func New(env Environment, locator Locator, opts Options, logger *logging.Logger) (*Bootstrapper, error) {
	if env == nil {
		return nil, errors.New("bootstrap: environment is required")
	}
	if locator == nil {
		return nil, errors.New("bootstrap: resource locator is required")
	}
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Bootstrapper{
		env:     env,
		locator: locator,
		opts:    opts,
		logger:  logger.Named("bootstrap"),
	}, nil
}

// Options returns the effective options, defaults applied.
func (b *Bootstrapper) Options() Options {
	return b.opts
}

// Initialize makes sure the target file exists. Every failure is returned as
// an *Error; nothing is retried. A failed run leaves no target file behind
// and is safe to repeat from scratch.
func (b *Bootstrapper) Initialize() (*Result, error) {
	start := time.Now()
	log := b.logger.With(zap.String("run_id", uuid.NewString()))

	root, err := b.dataRoot()
	if err != nil {
		log.Error("data root unavailable", zap.Error(err))
		return nil, err
	}

	targetDir := b.opts.TargetDir(root)
	res := &Result{
		DataRoot:   root,
		TargetDir:  targetDir,
		TargetPath: filepath.Join(targetDir, b.opts.TargetFileName),
	}
	log = log.With(zap.String("target", res.TargetPath))
	log.Debug("bootstrap started",
		zap.String("data_root", root),
		zap.Stringer("strategy", b.opts.Strategy),
	)

	created, err := ensureDir(targetDir, b.opts.DirPerm)
	if err != nil {
		log.Error("cannot create data directory", zap.String("dir", targetDir), zap.Error(err))
		return nil, &Error{Kind: DirectoryCreation, Path: targetDir, Err: err}
	}
	if created {
		log.Info("created data directory", zap.String("dir", targetDir))
	}

	present, err := exists(res.TargetPath)
	if err != nil {
		log.Error("cannot check for existing data file", zap.Error(err))
		return nil, &Error{Kind: Copy, Path: res.TargetPath, Err: err}
	}
	if present {
		log.Info("data file already present, leaving it untouched")
		return res, nil
	}

	name := b.opts.SeedResource
	seedPath, ok := b.locator.Resolve(name)
	if !ok || seedPath == "" {
		log.Error("seed resource not found in payload", zap.String("resource", name))
		return nil, &Error{Kind: ResourceResolution, Resource: name, Err: ErrNoMapping}
	}
	if !filepath.IsAbs(seedPath) {
		log.Error("seed resource resolved to a relative path", zap.String("resource", name), zap.String("seed", seedPath))
		return nil, &Error{Kind: ResourceResolution, Resource: name, Source: seedPath, Err: errors.New("resolved path is not absolute")}
	}

	n, sum, err := b.copySeed(seedPath, res.TargetPath)
	if err != nil {
		log.Error("seed copy failed", zap.String("seed", seedPath), zap.Error(err))
		return nil, &Error{Kind: Copy, Path: res.TargetPath, Source: seedPath, Resource: name, Err: err}
	}

	res.Created = true
	res.SeedPath = seedPath
	res.Bytes = n
	res.Checksum = sum
	log.Info("seeded data file",
		zap.String("seed", seedPath),
		zap.String("size", humanize.Bytes(uint64(n))),
		zap.String("sha256", sum),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

func (b *Bootstrapper) dataRoot() (string, error) {
	root, err := b.env.DataRoot()
	if err != nil {
		return "", &Error{Kind: EnvironmentResolution, Err: err}
	}
	if strings.TrimSpace(root) == "" {
		return "", &Error{Kind: EnvironmentResolution, Err: errors.New("host returned an empty data root")}
	}
	if !filepath.IsAbs(root) {
		return "", &Error{Kind: EnvironmentResolution, Path: root, Err: errors.New("data root is not an absolute path")}
	}
	return filepath.Clean(root), nil
}

// ensureDir creates dir and any missing parents. created reports whether dir
// was missing beforehand.
func ensureDir(dir string, perm os.FileMode) (created bool, err error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dir)
		}
		return false, nil
	case !errors.Is(err, os.ErrNotExist):
		return false, err
	}

	if err := os.MkdirAll(dir, perm); err != nil {
		return false, err
	}
	return true, nil
}

// exists reports whether anything is present at path. The entry is never
// opened.
func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
