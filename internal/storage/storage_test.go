package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// runStorageSuite sprawdza zachowanie wspólne dla wszystkich implementacji Storage
func runStorageSuite(t *testing.T, newStorage func(t *testing.T) Storage) {
	t.Run("SaveOpenStat", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		n, err := s.Save(ctx, "uploads/A/x.txt", strings.NewReader("Hello, world!"))
		require.NoError(t, err)
		require.Equal(t, int64(13), n)

		rc, err := s.Open(ctx, "uploads/A/x.txt")
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		require.Equal(t, "Hello, world!", string(data))

		e, err := s.Stat(ctx, "uploads/A/x.txt")
		require.NoError(t, err)
		require.False(t, e.IsDir)
		require.Equal(t, int64(13), e.Size)

		e, err = s.Stat(ctx, "uploads/A")
		require.NoError(t, err)
		require.True(t, e.IsDir)

		_, err = s.Open(ctx, "uploads/A/missing.txt")
		require.ErrorIs(t, err, ErrNotExist)
		_, err = s.Stat(ctx, "uploads/missing")
		require.ErrorIs(t, err, ErrNotExist)
	})

	t.Run("SaveReplaces", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		_, err := s.Save(ctx, "uploads/x.txt", strings.NewReader("first version"))
		require.NoError(t, err)
		_, err = s.Save(ctx, "uploads/x.txt", strings.NewReader("v2"))
		require.NoError(t, err)

		e, err := s.Stat(ctx, "uploads/x.txt")
		require.NoError(t, err)
		require.Equal(t, int64(2), e.Size)
	})

	t.Run("MkdirAllIdempotent", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.MkdirAll(ctx, "uploads/A/B"))
		require.NoError(t, s.MkdirAll(ctx, "uploads/A/B"))

		ok, err := s.Exists(ctx, "uploads/A/B")
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = s.Exists(ctx, "uploads/A/C")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("RenameDirectoryMovesContents", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.MkdirAll(ctx, "uploads/A/B/C"))
		_, err := s.Save(ctx, "uploads/A/B/C/deep.pdf", strings.NewReader("pdf"))
		require.NoError(t, err)

		require.NoError(t, s.Rename(ctx, "uploads/A/B", "uploads/X/B"))

		ok, err := s.Exists(ctx, "uploads/A/B")
		require.NoError(t, err)
		require.False(t, ok)
		e, err := s.Stat(ctx, "uploads/X/B/C/deep.pdf")
		require.NoError(t, err)
		require.Equal(t, int64(3), e.Size)

		err = s.Rename(ctx, "uploads/A/B", "uploads/Y")
		require.ErrorIs(t, err, ErrNotExist)
	})

	t.Run("RenameRefusesExistingTarget", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		_, err := s.Save(ctx, "uploads/a.txt", strings.NewReader("a"))
		require.NoError(t, err)
		_, err = s.Save(ctx, "uploads/b.txt", strings.NewReader("b"))
		require.NoError(t, err)

		require.ErrorIs(t, s.Rename(ctx, "uploads/a.txt", "uploads/b.txt"), ErrExist)
	})

	t.Run("CopyDirectory", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.MkdirAll(ctx, "uploads/A/empty"))
		_, err := s.Save(ctx, "uploads/A/x.txt", strings.NewReader("xx"))
		require.NoError(t, err)

		require.NoError(t, s.Copy(ctx, "uploads/A", "uploads/Copy of A"))

		for _, p := range []string{"uploads/A/x.txt", "uploads/Copy of A/x.txt", "uploads/Copy of A/empty"} {
			ok, err := s.Exists(ctx, p)
			require.NoError(t, err)
			require.True(t, ok, p)
		}

		require.NoError(t, s.Copy(ctx, "uploads/A/x.txt", "uploads/Copy of x.txt"))
		rc, err := s.Open(ctx, "uploads/Copy of x.txt")
		require.NoError(t, err)
		data, _ := io.ReadAll(rc)
		rc.Close()
		require.Equal(t, "xx", string(data))

		require.ErrorIs(t, s.Copy(ctx, "uploads/nope", "uploads/dst"), ErrNotExist)
	})

	t.Run("RemoveAndRemoveAll", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		_, err := s.Save(ctx, "uploads/A/B/x.txt", strings.NewReader("x"))
		require.NoError(t, err)
		_, err = s.Save(ctx, "uploads/A/y.txt", strings.NewReader("y"))
		require.NoError(t, err)

		require.NoError(t, s.Remove(ctx, "uploads/A/y.txt"))
		require.ErrorIs(t, s.Remove(ctx, "uploads/A/y.txt"), ErrNotExist)

		require.NoError(t, s.RemoveAll(ctx, "uploads/A"))
		ok, err := s.Exists(ctx, "uploads/A/B/x.txt")
		require.NoError(t, err)
		require.False(t, ok)
		require.ErrorIs(t, s.RemoveAll(ctx, "uploads/A"), ErrNotExist)
	})

	t.Run("WalkParentsFirst", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.MkdirAll(ctx, "uploads/A/B"))
		_, err := s.Save(ctx, "uploads/A/B/x.txt", strings.NewReader("12345"))
		require.NoError(t, err)
		_, err = s.Save(ctx, "uploads/top.txt", strings.NewReader("1"))
		require.NoError(t, err)

		var seen []Entry
		require.NoError(t, s.Walk(ctx, "uploads", func(e Entry) error {
			seen = append(seen, e)
			return nil
		}))
		require.Equal(t, []Entry{
			{Path: "uploads/A", IsDir: true},
			{Path: "uploads/A/B", IsDir: true},
			{Path: "uploads/A/B/x.txt", Size: 5},
			{Path: "uploads/top.txt", Size: 1},
		}, seen)

		// Brak katalogu głównego to po prostu pusty wynik
		var count int
		require.NoError(t, s.Walk(ctx, "nothing-here", func(Entry) error { count++; return nil }))
		require.Zero(t, count)
	})
}
