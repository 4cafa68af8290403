// Package storage holds the physical side of the tree: one directory per folder node and one
// file per file node, addressed by the node's "/"-separated logical path.
package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotExist = errors.New("entry does not exist")
	ErrExist    = errors.New("entry already exists")
)

type Entry struct {
	Path  string
	IsDir bool
	Size  int64
}

type Storage interface {
	MkdirAll(ctx context.Context, p string) error
	// Save writes r to p, replacing an existing file, and returns the number of bytes written.
	Save(ctx context.Context, p string, r io.Reader) (int64, error)
	Open(ctx context.Context, p string) (io.ReadCloser, error)
	Stat(ctx context.Context, p string) (Entry, error)
	Exists(ctx context.Context, p string) (bool, error)
	// Rename moves a file or a whole directory. The destination's parent is created when missing.
	Rename(ctx context.Context, oldPath, newPath string) error
	// Copy duplicates a file, or a directory with everything below it.
	Copy(ctx context.Context, src, dst string) error
	Remove(ctx context.Context, p string) error
	RemoveAll(ctx context.Context, p string) error
	// Walk visits every entry strictly below root, parents before children.
	Walk(ctx context.Context, root string, fn func(Entry) error) error
}
