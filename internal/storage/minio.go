package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Minio is a Filesystem backed by an S3-compatible object store. It is used
// as the rendition storage backend; vendor image drops stay on local disk.
type Minio struct {
	client *minio.Client
	bucket string
}

// NewMinio connects to an object store endpoint.
func NewMinio(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Minio, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object storage: %w", err)
	}
	return &Minio{client: client, bucket: bucket}, nil
}

// ReadFile downloads an object.
func (m *Minio) ReadFile(ctx context.Context, p string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, p, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", p, err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", p, err)
	}
	return data, nil
}

// WriteFile uploads an object with a content type derived from the
// extension.
func (m *Minio) WriteFile(ctx context.Context, p string, data []byte) error {
	contentType := mime.TypeByExtension(path.Ext(p))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := m.client.PutObject(ctx, m.bucket, p, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", p, err)
	}
	return nil
}

// Exists reports whether an object exists.
func (m *Minio) Exists(ctx context.Context, p string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, p, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat object %s: %w", p, err)
}

// List returns the immediate children of a prefix.
func (m *Minio) List(ctx context.Context, dir string) ([]Entry, error) {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var entries []Entry
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		isDir := strings.HasSuffix(name, "/")
		entries = append(entries, Entry{Name: strings.TrimSuffix(name, "/"), IsDir: isDir})
	}
	return entries, nil
}

// Walk visits every object below a prefix.
func (m *Minio) Walk(ctx context.Context, root string, fn func(path string, entry Entry) error) error {
	prefix := strings.TrimSuffix(root, "/") + "/"
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return fmt.Errorf("failed to walk %s: %w", root, obj.Err)
		}
		if err := fn(obj.Key, Entry{Name: path.Base(obj.Key)}); err != nil {
			return err
		}
	}
	return nil
}
