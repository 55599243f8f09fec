package images

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/adasafety/catops/internal/storage"
)

// fakeFS is an in-memory storage.Filesystem for tests.
type fakeFS struct {
	files map[string][]byte
}

func newFakeFS(paths ...string) *fakeFS {
	fs := &fakeFS{files: make(map[string][]byte)}
	for _, p := range paths {
		fs.files[p] = []byte("data")
	}
	return fs
}

func (f *fakeFS) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("not found: %s", path)
	}
	return data, nil
}

func (f *fakeFS) WriteFile(_ context.Context, path string, data []byte) error {
	f.files[path] = append([]byte(nil), data...)
	return nil
}

func (f *fakeFS) Exists(_ context.Context, path string) (bool, error) {
	_, ok := f.files[path]
	return ok, nil
}

func (f *fakeFS) List(_ context.Context, dir string) ([]storage.Entry, error) {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	if dir == "" || dir == "." {
		prefix = ""
	}
	seen := make(map[string]bool)
	var entries []storage.Entry
	for p := range f.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		name, isDir := rest, false
		if idx := strings.Index(rest, "/"); idx >= 0 {
			name, isDir = rest[:idx], true
		}
		if !seen[name] {
			seen[name] = true
			entries = append(entries, storage.Entry{Name: name, IsDir: isDir})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (f *fakeFS) Walk(_ context.Context, root string, fn func(path string, entry storage.Entry) error) error {
	prefix := strings.TrimSuffix(root, "/") + "/"
	if root == "" || root == "." {
		prefix = ""
	}
	var paths []string
	for p := range f.files {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	for _, p := range paths {
		parts := strings.Split(p, "/")
		if err := fn(p, storage.Entry{Name: parts[len(parts)-1]}); err != nil {
			return err
		}
	}
	return nil
}
