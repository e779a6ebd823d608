package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is used when WriteAtomic is given a zero mode.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content. The bytes go to a temporary file
// in the same directory, which is synced, given mode and renamed over path.
// On failure the temporary file is removed and path is left as it was.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".autofix-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, mode.Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
