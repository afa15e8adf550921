// Package storage stores uploaded files and hands back their public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrInvalidPath = errors.New("storage: invalid object path")

type Bucket interface {
	Upload(ctx context.Context, bucket, name string, r io.Reader) (string, error)
	// Remove deletes an object. A missing object is not an error.
	Remove(ctx context.Context, bucket, name string) error
	PublicURL(bucket, name string) string
}

// Local keeps objects under Root/<bucket>/<name> and serves them from
// BaseURL, which the HTTP layer maps onto Root.
type Local struct {
	Root    string
	BaseURL string
}

func NewLocal(root, baseURL string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &Local{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *Local) Upload(ctx context.Context, bucket, name string, r io.Reader) (string, error) {
	rel, err := clean(bucket, name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dst := filepath.Join(l.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	// write to a temp file first so readers never see a partial object
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("storage: create: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("storage: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("storage: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("storage: rename: %w", err)
	}
	return l.PublicURL(bucket, name), nil
}

func (l *Local) Remove(ctx context.Context, bucket, name string) error {
	rel, err := clean(bucket, name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err = os.Remove(filepath.Join(l.Root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: remove: %w", err)
	}
	return nil
}

func (l *Local) PublicURL(bucket, name string) string {
	rel, err := clean(bucket, name)
	if err != nil {
		return ""
	}
	parts := strings.Split(rel, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return l.BaseURL + "/" + strings.Join(parts, "/")
}

func clean(bucket, name string) (string, error) {
	if bucket == "" || name == "" || strings.ContainsAny(bucket, `/\`) {
		return "", ErrInvalidPath
	}
	p := path.Clean("/" + strings.ReplaceAll(name, `\`, "/"))
	if p == "/" || strings.Contains(name, "..") {
		return "", ErrInvalidPath
	}
	return bucket + p, nil
}
