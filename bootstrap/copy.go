package bootstrap

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

// copySeed copies seedPath to targetPath through a temp file in the target
// directory. The temp file is synced, verified against the hash of the bytes
// read from the seed, and only then renamed into place, so targetPath is
// either absent or complete. The temp file is removed on any failure. The
// directory is synced after the rename so the new entry survives a crash.
func (b *Bootstrapper) copySeed(seedPath, targetPath string) (int64, string, error) {
	src, err := os.Open(seedPath)
	if err != nil {
		return 0, "", fmt.Errorf("failed to open seed: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return 0, "", fmt.Errorf("failed to stat seed: %w", err)
	}
	if !info.Mode().IsRegular() {
		return 0, "", fmt.Errorf("seed %s is not a regular file", seedPath)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(targetPath), "."+filepath.Base(targetPath)+".*.tmp")
	if err != nil {
		return 0, "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	var r io.Reader = src
	if b.wrapSource != nil {
		r = b.wrapSource(r)
	}
	hasher := sha256.New()

	n, err := io.Copy(tmpFile, io.TeeReader(r, hasher))
	if err != nil {
		return 0, "", fmt.Errorf("failed to copy seed data: %w", err)
	}
	if err := tmpFile.Chmod(b.opts.FilePerm); err != nil {
		return 0, "", fmt.Errorf("failed to set permissions on temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return 0, "", fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return 0, "", fmt.Errorf("failed to close temp file: %w", err)
	}

	want := hex.EncodeToString(hasher.Sum(nil))
	got, err := ComputeSHA256(tmpPath)
	if err != nil {
		return 0, "", err
	}
	if got != want {
		return 0, "", fmt.Errorf("%w: seed %s, written %s", ErrChecksumMismatch, want, got)
	}

	if err := os.Rename(tmpPath, targetPath); err != nil {
		return 0, "", fmt.Errorf("failed to move data file into place: %w", err)
	}

	success = true

	dir := filepath.Dir(targetPath)
	if err := syncDir(dir); err != nil {
		b.logger.Warn("could not sync data directory after rename", zap.String("dir", dir), zap.Error(err))
	}
	return n, want, nil
}

// syncDir flushes a directory's entries to disk. Windows cannot open a
// directory for syncing; there it is a no-op.
func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
