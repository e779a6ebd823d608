package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups go.
type BackupMode string

const (
	// BackupModeSidecar writes path + BackupSuffix next to the document.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to a document path to name its sidecar backup.
const BackupSuffix = ".autofix.bak"

// BackupConfig controls backups taken before a document is rewritten.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns sidecar backups, disabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// Active reports whether c results in backups being written.
func (c BackupConfig) Active() bool {
	return c.Enabled && c.Mode != BackupModeNone
}

// BackupPath returns where the backup of path lives, or "" for BackupModeNone.
// Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// BackupExists reports whether a backup of path is present.
func BackupExists(path string, mode BackupMode) bool {
	backup := BackupPath(path, mode)
	if backup == "" {
		return false
	}
	_, err := os.Stat(backup)
	return err == nil
}

// CreateBackup copies path to its backup location unless a backup is
// already there. An existing backup is never overwritten, so it keeps the
// content from before the first fix run. Returns true if a backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Active() {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	backup := BackupPath(path, cfg.Mode)
	switch _, err := os.Stat(backup); {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat original for backup: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backup, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
