package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OS is a Filesystem on the local disk, rooted at a base directory.
type OS struct {
	root string
}

// NewOS creates a local filesystem rooted at dir.
func NewOS(dir string) *OS {
	return &OS{root: dir}
}

func (o *OS) abs(path string) string {
	return filepath.Join(o.root, filepath.FromSlash(path))
}

// ReadFile reads a file below the root.
func (o *OS) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(o.abs(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes a file below the root, creating parent directories.
func (o *OS) WriteFile(_ context.Context, path string, data []byte) error {
	full := o.abs(path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a file or directory exists below the root.
func (o *OS) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(o.abs(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}

// List returns the entries of a directory below the root.
func (o *OS) List(_ context.Context, dir string) ([]Entry, error) {
	dirents, err := os.ReadDir(o.abs(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		entries = append(entries, Entry{Name: d.Name(), IsDir: d.IsDir()})
	}
	return entries, nil
}

// Walk visits every entry below root. Paths passed to fn are
// slash-separated and relative to the filesystem root.
func (o *OS) Walk(ctx context.Context, root string, fn func(path string, entry Entry) error) error {
	base := o.abs(root)
	return filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if path == base {
			return nil
		}
		rel, err := filepath.Rel(o.root, path)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel), Entry{Name: d.Name(), IsDir: d.IsDir()})
	})
}
