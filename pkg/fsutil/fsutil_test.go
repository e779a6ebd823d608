package fsutil_test

import (
	"context"
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/autofix/pkg/fsutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.py")
	writeFile(t, path, "class A(object):\n")

	content, info, err := fsutil.ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(content) != "class A(object):\n" {
		t.Errorf("content = %q", content)
	}
	if info.Path != path {
		t.Errorf("Path = %q, want %q", info.Path, path)
	}
	if info.Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d", info.Size, len(content))
	}
	if info.Hash != sha256.Sum256(content) {
		t.Error("Hash does not match content")
	}
	if info.Mode.Perm() != 0o644 {
		t.Errorf("Mode = %v, want 0644", info.Mode.Perm())
	}
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name   string
		path   string
		target error
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.py"), target: fsutil.ErrNotFound},
		{name: "directory", path: dir, target: fsutil.ErrIsDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := fsutil.ReadFile(context.Background(), tt.path)
			if !errors.Is(err, tt.target) {
				t.Errorf("ReadFile() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestReadFile_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := fsutil.ReadFile(ctx, "whatever")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ReadFile() error = %v, want context.Canceled", err)
	}
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.txt")
		writeFile(t, path, "original")

		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}

		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if modified {
			t.Error("expected unchanged file to report not modified")
		}
	})

	t.Run("same size rewrite with restored mtime", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.txt")
		writeFile(t, path, "original")

		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}

		writeFile(t, path, "ORIGINAL")
		if err := os.Chtimes(path, info.ModTime, info.ModTime); err != nil {
			t.Fatalf("Chtimes: %v", err)
		}

		quick, err := fsutil.CheckModifiedQuick(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModifiedQuick() error = %v", err)
		}
		if quick {
			t.Error("quick check should not see a same-size rewrite with equal mtime")
		}

		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if !modified {
			t.Error("hash check should catch the rewrite")
		}
	})

	t.Run("size change", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.txt")
		writeFile(t, path, "original")

		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}

		writeFile(t, path, "original plus more")
		if err := os.Chtimes(path, info.ModTime, info.ModTime.Add(time.Second)); err != nil {
			t.Fatalf("Chtimes: %v", err)
		}

		modified, err := fsutil.CheckModifiedQuick(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModifiedQuick() error = %v", err)
		}
		if !modified {
			t.Error("expected size change to be detected")
		}
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.txt")
		writeFile(t, path, "original")

		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if err := os.Remove(path); err != nil {
			t.Fatalf("Remove: %v", err)
		}

		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if !modified {
			t.Error("deleted file should count as modified")
		}
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(context.Background(), nil)
		if !errors.Is(err, fsutil.ErrNilFileInfo) {
			t.Errorf("CheckModified(nil) error = %v, want ErrNilFileInfo", err)
		}
	})
}
