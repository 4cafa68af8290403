package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jaevor/go-nanoid"
	"github.com/spf13/afero"
)

// StagingDir holds uploads in flight. It sits at the top of the filesystem, outside any root prefix,
// so no stored path can collide with a staging file.
const StagingDir = ".staging"

// LocalStorage keeps the tree on an afero filesystem, the real disk below a base directory in production.
type LocalStorage struct {
	fs       afero.Fs
	basePath string
	// nativeRename is true when the filesystem moves a directory together with its contents.
	nativeRename bool
	stagingID    func() string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return newLocalStorage(afero.NewBasePathFs(afero.NewOsFs(), basePath), basePath, true)
}

// NewMemoryStorage keeps everything in memory.
func NewMemoryStorage() (*LocalStorage, error) {
	return newLocalStorage(afero.NewMemMapFs(), "", false)
}

func newLocalStorage(fs afero.Fs, basePath string, nativeRename bool) (*LocalStorage, error) {
	gen, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}
	return &LocalStorage{fs: fs, basePath: basePath, nativeRename: nativeRename, stagingID: gen}, nil
}

// Fs exposes the backing filesystem.
func (ls *LocalStorage) Fs() afero.Fs {
	return ls.fs
}

func (ls *LocalStorage) realPath(p string) string {
	return filepath.FromSlash("/" + strings.TrimPrefix(p, "/"))
}

func notExist(p string) error {
	return fmt.Errorf("%s: %w", p, ErrNotExist)
}

func (ls *LocalStorage) MkdirAll(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ls.fs.MkdirAll(ls.realPath(p), os.ModePerm)
}

func (ls *LocalStorage) Save(ctx context.Context, p string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	target := ls.realPath(p)
	dir := filepath.Dir(target)
	if err := ls.fs.MkdirAll(dir, os.ModePerm); err != nil {
		return 0, err
	}

	stagingDir := ls.realPath(StagingDir)
	if err := ls.fs.MkdirAll(stagingDir, os.ModePerm); err != nil {
		return 0, err
	}
	staging := filepath.Join(stagingDir, ls.stagingID())
	file, err := ls.fs.Create(staging)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(file, r)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		ls.fs.Remove(staging)
		return 0, err
	}
	if err := ls.fs.Rename(staging, target); err != nil {
		ls.fs.Remove(staging)
		return 0, err
	}
	return n, nil
}

func (ls *LocalStorage) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := ls.fs.Open(ls.realPath(p))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notExist(p)
		}
		return nil, err
	}
	return file, nil
}

func (ls *LocalStorage) Stat(ctx context.Context, p string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	info, err := ls.fs.Stat(ls.realPath(p))
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, notExist(p)
		}
		return Entry{}, err
	}
	e := Entry{Path: p, IsDir: info.IsDir()}
	if !e.IsDir {
		e.Size = info.Size()
	}
	return e, nil
}

func (ls *LocalStorage) Exists(ctx context.Context, p string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return afero.Exists(ls.fs, ls.realPath(p))
}

func (ls *LocalStorage) Rename(ctx context.Context, oldPath, newPath string) error {
	src, err := ls.Stat(ctx, oldPath)
	if err != nil {
		return err
	}
	if oldPath == newPath {
		return nil
	}
	if ok, err := ls.Exists(ctx, newPath); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("%s: %w", newPath, ErrExist)
	}
	if err := ls.fs.MkdirAll(filepath.Dir(ls.realPath(newPath)), os.ModePerm); err != nil {
		return err
	}
	if !src.IsDir || ls.nativeRename {
		return ls.fs.Rename(ls.realPath(oldPath), ls.realPath(newPath))
	}
	if err := ls.copyTree(ctx, oldPath, newPath); err != nil {
		return err
	}
	return ls.fs.RemoveAll(ls.realPath(oldPath))
}

func (ls *LocalStorage) Copy(ctx context.Context, src, dst string) error {
	if _, err := ls.Stat(ctx, src); err != nil {
		return err
	}
	if ok, err := ls.Exists(ctx, dst); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("%s: %w", dst, ErrExist)
	}
	return ls.copyTree(ctx, src, dst)
}

func (ls *LocalStorage) copyTree(ctx context.Context, src, dst string) error {
	srcReal, dstReal := ls.realPath(src), ls.realPath(dst)
	return afero.Walk(ls.fs, srcReal, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		target := dstReal + strings.TrimPrefix(p, srcReal)
		if info.IsDir() {
			return ls.fs.MkdirAll(target, os.ModePerm)
		}
		return ls.copyFile(p, target)
	})
}

func (ls *LocalStorage) copyFile(src, dst string) error {
	in, err := ls.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := ls.fs.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return err
	}
	out, err := ls.fs.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (ls *LocalStorage) Remove(ctx context.Context, p string) error {
	if _, err := ls.Stat(ctx, p); err != nil {
		return err
	}
	return ls.fs.Remove(ls.realPath(p))
}

func (ls *LocalStorage) RemoveAll(ctx context.Context, p string) error {
	if _, err := ls.Stat(ctx, p); err != nil {
		return err
	}
	return ls.fs.RemoveAll(ls.realPath(p))
}

func (ls *LocalStorage) Walk(ctx context.Context, root string, fn func(Entry) error) error {
	rootReal := ls.realPath(root)
	if ok, err := afero.DirExists(ls.fs, rootReal); err != nil || !ok {
		return err
	}
	return afero.Walk(ls.fs, rootReal, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == rootReal {
			return nil
		}
		if p == ls.realPath(StagingDir) {
			return filepath.SkipDir
		}
		rel := strings.TrimPrefix(path.Join(root, filepath.ToSlash(strings.TrimPrefix(p, rootReal))), "/")
		e := Entry{Path: rel, IsDir: info.IsDir()}
		if !e.IsDir {
			e.Size = info.Size()
		}
		return fn(e)
	})
}
