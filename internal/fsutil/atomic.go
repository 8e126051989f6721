// Package fsutil provides the low-level filesystem primitives shared by
// the backup and restore paths, most importantly atomic file
// replacement.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteAtomic replaces the file at path with content in a way that a
// reader can never observe a half-written file: the content goes to a
// uniquely named temp file in the same directory (same filesystem, so
// the final rename is atomic) which is then renamed onto path.
//
// The temp file is created with the given mode; since the mode of a
// fresh temp file is not reliable across platforms and umasks, it is
// re-applied explicitly after creation. Callers that want to preserve
// an existing file's permissions must stat it before calling and pass
// the captured mode; the writer has no memory of prior permissions.
//
// On failure the temp file is removed before the error propagates, with
// one deliberate exception: when the target was already removed as part
// of the rename recovery attempt and the retry itself fails, the temp
// file is kept so the content is not lost. The returned error names its
// location.
func WriteAtomic(path string, content []byte, mode os.FileMode) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("set mode on temp file: %w", err)
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := rename(tmpPath, path); err != nil {
		// Recovery: some platforms refuse to replace a busy target in
		// one step. Remove it and retry once. If the retry fails after
		// the target is already gone, keep the temp file: deleting it
		// now would lose the only remaining copy of the content.
		if rmErr := os.Remove(path); rmErr == nil {
			if retryErr := rename(tmpPath, path); retryErr != nil {
				return fmt.Errorf("rename after removing target failed, content preserved at %s: %w", tmpPath, retryErr)
			}
			return nil
		}
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file onto %s: %w", path, err)
	}

	return nil
}

// rename wraps os.Rename with a single retry for transient failures.
func rename(oldPath, newPath string) error {
	err := os.Rename(oldPath, newPath)
	if err == nil || !isTransient(err) {
		return err
	}
	time.Sleep(50 * time.Millisecond)
	return os.Rename(oldPath, newPath)
}

// StatMode returns the current permission mode of path and whether the
// path exists as a regular file. Callers use it to capture permissions
// before an atomic replace.
func StatMode(path string) (os.FileMode, bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if !info.Mode().IsRegular() {
		return 0, false, fmt.Errorf("%s is not a regular file", path)
	}
	return info.Mode().Perm(), true, nil
}
