// Package fsutil reads documents with enough metadata to notice concurrent
// edits, and writes corrected documents back without leaving partial files.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilFileInfo is returned when a nil FileInfo is passed.
	ErrNilFileInfo = errors.New("nil FileInfo")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path names a directory.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileInfo records what a document looked like when it was read.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64

	// Hash is the SHA-256 digest of the content that was read.
	Hash [sha256.Size]byte
}

// ReadFile returns the content of path together with a FileInfo snapshot.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// CheckModified reports whether the file changed since info was taken.
// Matching size and mtime are confirmed by re-hashing the content, so
// same-second rewrites of equal length are still caught. A deleted file
// counts as modified.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	changed, err := CheckModifiedQuick(ctx, info)
	if err != nil || changed {
		return changed, err
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	return sha256.Sum256(content) != info.Hash, nil
}

// CheckModifiedQuick compares only size and mtime.
func CheckModifiedQuick(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}

	return stat.Size() != info.Size || !stat.ModTime().Equal(info.ModTime), nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
