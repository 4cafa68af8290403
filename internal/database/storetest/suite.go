// Package storetest holds the behaviour every database.Store implementation must share.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/models"

	"github.com/stretchr/testify/require"
)

// StoreFactory returns an empty store; it may use t.TempDir and t.Cleanup.
type StoreFactory func(t *testing.T) database.Store

func RunConformanceSuite(t *testing.T, factory StoreFactory) {
	t.Helper()

	t.Run("InsertAndGet", func(t *testing.T) { testInsertAndGet(t, factory) })
	t.Run("IDsNeverReused", func(t *testing.T) { testIDsNeverReused(t, factory) })
	t.Run("PartialUpdate", func(t *testing.T) { testPartialUpdate(t, factory) })
	t.Run("MoveToRoot", func(t *testing.T) { testMoveToRoot(t, factory) })
	t.Run("DuplicateSiblingName", func(t *testing.T) { testDuplicateSiblingName(t, factory) })
	t.Run("SiblingExists", func(t *testing.T) { testSiblingExists(t, factory) })
	t.Run("DeleteNode", func(t *testing.T) { testDeleteNode(t, factory) })
	t.Run("ScanOrderedByID", func(t *testing.T) { testScanOrderedByID(t, factory) })
	t.Run("RollbackOnError", func(t *testing.T) { testRollbackOnError(t, factory) })
}

var errAbort = errors.New("abort")

func insert(t *testing.T, s database.Store, arg database.CreateNodeParams) *models.Node {
	t.Helper()
	var node *models.Node
	err := s.ExecTx(context.Background(), func(tx database.Tx) error {
		var err error
		node, err = tx.InsertNode(context.Background(), arg)
		return err
	})
	require.NoError(t, err)
	require.NotNil(t, node)
	return node
}

func get(t *testing.T, s database.Store, id int64) (*models.Node, error) {
	t.Helper()
	var node *models.Node
	err := s.View(context.Background(), func(tx database.Tx) error {
		var err error
		node, err = tx.GetNode(context.Background(), id)
		return err
	})
	return node, err
}

func folder(name string, parentID *int64, path string) database.CreateNodeParams {
	return database.CreateNodeParams{ParentID: parentID, Name: name, Type: models.TypeFolder, Path: path, Owner: "me"}
}

func testInsertAndGet(t *testing.T, factory StoreFactory) {
	s := factory(t)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	root := insert(t, s, folder("A", nil, "uploads/A"))
	file := insert(t, s, database.CreateNodeParams{
		ParentID:   &root.ID,
		Name:       "x.txt",
		Type:       models.TypeDocument,
		Size:       3,
		Path:       "uploads/A/x.txt",
		MimeType:   "text/plain; charset=utf-8",
		Owner:      "me",
		Shared:     true,
		CreatedAt:  created,
		ModifiedAt: created,
	})
	require.Greater(t, file.ID, root.ID)

	got, err := get(t, s, file.ID)
	require.NoError(t, err)
	require.Equal(t, "x.txt", got.Name)
	require.Equal(t, models.TypeDocument, got.Type)
	require.Equal(t, int64(3), got.Size)
	require.Equal(t, "uploads/A/x.txt", got.Path)
	require.Equal(t, "text/plain; charset=utf-8", got.MimeType)
	require.NotNil(t, got.ParentID)
	require.Equal(t, root.ID, *got.ParentID)
	require.True(t, got.Shared)
	require.False(t, got.Starred)
	require.False(t, got.Deleted)
	require.True(t, created.Equal(got.CreatedAt))
	require.True(t, created.Equal(got.ModifiedAt))

	gotRoot, err := get(t, s, root.ID)
	require.NoError(t, err)
	require.Nil(t, gotRoot.ParentID)
	require.False(t, gotRoot.CreatedAt.IsZero())

	_, err = get(t, s, 9999)
	require.ErrorIs(t, err, database.ErrNodeNotFound)
}

func testIDsNeverReused(t *testing.T, factory StoreFactory) {
	s := factory(t)
	a := insert(t, s, folder("A", nil, "uploads/A"))
	b := insert(t, s, folder("B", nil, "uploads/B"))

	err := s.ExecTx(context.Background(), func(tx database.Tx) error {
		return tx.DeleteNode(context.Background(), b.ID)
	})
	require.NoError(t, err)

	c := insert(t, s, folder("C", nil, "uploads/C"))
	require.Greater(t, b.ID, a.ID)
	require.Greater(t, c.ID, b.ID)
}

func testPartialUpdate(t *testing.T, factory StoreFactory) {
	s := factory(t)
	a := insert(t, s, folder("A", nil, "uploads/A"))
	b := insert(t, s, folder("B", nil, "uploads/B"))
	f := insert(t, s, database.CreateNodeParams{ParentID: &a.ID, Name: "f.pdf", Type: models.TypePDF, Path: "uploads/A/f.pdf", Owner: "me"})

	starred := true
	err := s.ExecTx(context.Background(), func(tx database.Tx) error {
		_, err := tx.UpdateNode(context.Background(), f.ID, database.UpdateNodeParams{Starred: &starred})
		return err
	})
	require.NoError(t, err)

	got, err := get(t, s, f.ID)
	require.NoError(t, err)
	require.True(t, got.Starred)
	require.Equal(t, "f.pdf", got.Name)
	require.Equal(t, a.ID, *got.ParentID)

	name, path := "g.pdf", "uploads/B/g.pdf"
	modified := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	var updated *models.Node
	err = s.ExecTx(context.Background(), func(tx database.Tx) error {
		var err error
		updated, err = tx.UpdateNode(context.Background(), f.ID, database.UpdateNodeParams{
			Name: &name, Path: &path, ParentID: &b.ID, ModifiedAt: &modified,
		})
		return err
	})
	require.NoError(t, err)
	require.Equal(t, "g.pdf", updated.Name)
	require.Equal(t, "uploads/B/g.pdf", updated.Path)
	require.Equal(t, b.ID, *updated.ParentID)
	require.True(t, modified.Equal(updated.ModifiedAt))
	require.True(t, updated.Starred)

	err = s.ExecTx(context.Background(), func(tx database.Tx) error {
		_, err := tx.UpdateNode(context.Background(), 9999, database.UpdateNodeParams{Starred: &starred})
		return err
	})
	require.ErrorIs(t, err, database.ErrNodeNotFound)
}

func testMoveToRoot(t *testing.T, factory StoreFactory) {
	s := factory(t)
	a := insert(t, s, folder("A", nil, "uploads/A"))
	b := insert(t, s, folder("B", &a.ID, "uploads/A/B"))

	path := "uploads/B"
	err := s.ExecTx(context.Background(), func(tx database.Tx) error {
		_, err := tx.UpdateNode(context.Background(), b.ID, database.UpdateNodeParams{MoveToRoot: true, Path: &path})
		return err
	})
	require.NoError(t, err)

	got, err := get(t, s, b.ID)
	require.NoError(t, err)
	require.Nil(t, got.ParentID)
	require.Equal(t, "uploads/B", got.Path)
}

func testDuplicateSiblingName(t *testing.T, factory StoreFactory) {
	s := factory(t)
	a := insert(t, s, folder("A", nil, "uploads/A"))
	insert(t, s, folder("Docs", &a.ID, "uploads/A/Docs"))
	other := insert(t, s, folder("Other", &a.ID, "uploads/A/Other"))

	err := s.ExecTx(context.Background(), func(tx database.Tx) error {
		_, err := tx.InsertNode(context.Background(), folder("Docs", &a.ID, "uploads/A/Docs"))
		return err
	})
	require.ErrorIs(t, err, database.ErrDuplicateNodeName)

	// Ta sama nazwa na poziomie głównym jest dozwolona
	insert(t, s, folder("Docs", nil, "uploads/Docs"))

	name := "Docs"
	err = s.ExecTx(context.Background(), func(tx database.Tx) error {
		_, err := tx.UpdateNode(context.Background(), other.ID, database.UpdateNodeParams{Name: &name})
		return err
	})
	require.ErrorIs(t, err, database.ErrDuplicateNodeName)
}

func testSiblingExists(t *testing.T, factory StoreFactory) {
	s := factory(t)
	a := insert(t, s, folder("A", nil, "uploads/A"))
	x := insert(t, s, folder("x", &a.ID, "uploads/A/x"))

	err := s.View(context.Background(), func(tx database.Tx) error {
		ctx := context.Background()

		ok, err := tx.SiblingExists(ctx, "x", &a.ID, nil)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = tx.SiblingExists(ctx, "x", &a.ID, &x.ID)
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = tx.SiblingExists(ctx, "X", &a.ID, nil)
		require.NoError(t, err)
		require.False(t, ok, "names are case-sensitive")

		ok, err = tx.SiblingExists(ctx, "x", nil, nil)
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = tx.SiblingExists(ctx, "A", nil, nil)
		require.NoError(t, err)
		require.True(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func testDeleteNode(t *testing.T, factory StoreFactory) {
	s := factory(t)
	a := insert(t, s, folder("A", nil, "uploads/A"))

	err := s.ExecTx(context.Background(), func(tx database.Tx) error {
		return tx.DeleteNode(context.Background(), a.ID)
	})
	require.NoError(t, err)

	_, err = get(t, s, a.ID)
	require.ErrorIs(t, err, database.ErrNodeNotFound)

	err = s.ExecTx(context.Background(), func(tx database.Tx) error {
		return tx.DeleteNode(context.Background(), a.ID)
	})
	require.ErrorIs(t, err, database.ErrNodeNotFound)
}

func testScanOrderedByID(t *testing.T, factory StoreFactory) {
	s := factory(t)
	var ids []int64
	for _, name := range []string{"c", "a", "b", "d"} {
		ids = append(ids, insert(t, s, folder(name, nil, "uploads/"+name)).ID)
	}

	var all, filtered []models.Node
	err := s.View(context.Background(), func(tx database.Tx) error {
		var err error
		if all, err = tx.ScanNodes(context.Background(), nil); err != nil {
			return err
		}
		filtered, err = tx.ScanNodes(context.Background(), func(n *models.Node) bool { return n.Name != "a" })
		return err
	})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := range all {
		require.Equal(t, ids[i], all[i].ID)
	}
	require.Len(t, filtered, 3)
	require.Equal(t, "c", filtered[0].Name)
	require.Equal(t, "b", filtered[1].Name)
}

func testRollbackOnError(t *testing.T, factory StoreFactory) {
	s := factory(t)
	a := insert(t, s, folder("A", nil, "uploads/A"))

	deleted := true
	err := s.ExecTx(context.Background(), func(tx database.Tx) error {
		ctx := context.Background()
		if _, err := tx.UpdateNode(ctx, a.ID, database.UpdateNodeParams{Deleted: &deleted}); err != nil {
			return err
		}
		if _, err := tx.InsertNode(ctx, folder("B", nil, "uploads/B")); err != nil {
			return err
		}
		// Zmiany widoczne wewnątrz transakcji
		got, err := tx.GetNode(ctx, a.ID)
		if err != nil {
			return err
		}
		require.True(t, got.Deleted)
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	got, err := get(t, s, a.ID)
	require.NoError(t, err)
	require.False(t, got.Deleted)

	var nodes []models.Node
	err = s.View(context.Background(), func(tx database.Tx) error {
		var err error
		nodes, err = tx.ScanNodes(context.Background(), nil)
		return err
	})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
}
