package storage

import "context"

// Entry is one name in a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// Filesystem abstracts where vendor image drops are read from and where
// processed renditions are written. Implementations exist for local disk
// and object storage.
type Filesystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
	Exists(ctx context.Context, path string) (bool, error)
	List(ctx context.Context, dir string) ([]Entry, error)
	Walk(ctx context.Context, root string, fn func(path string, entry Entry) error) error
}
