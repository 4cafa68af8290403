package tree

import (
	"context"
	"errors"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/models"
	"menedzer-plikow/internal/storage"
)

// setDeleted writes the deleted flag across a subtree, skipping nodes already in that state.
// Only the subtree root gets a new modification time.
func (e *Engine) setDeleted(ctx context.Context, tx database.Tx, root *models.Node, deleted bool) (int, error) {
	changed := 0
	err := walkSubtree(ctx, tx, root, func(n, parent *models.Node) error {
		upd := database.UpdateNodeParams{}
		if n.Deleted != deleted {
			upd.Deleted = &deleted
		}
		if parent == nil {
			upd.ModifiedAt = e.timestamp()
		}
		if upd.Deleted == nil && upd.ModifiedAt == nil {
			return nil
		}
		if _, err := tx.UpdateNode(ctx, n.ID, upd); err != nil {
			return err
		}
		if upd.Deleted != nil {
			n.Deleted = deleted
			changed++
		}
		return nil
	})
	return changed, err
}

// SoftDelete moves a node and everything below it to the trash. Storage is not touched.
func (e *Engine) SoftDelete(ctx context.Context, id int64) error {
	var changed int
	err := e.mutate(ctx, "soft_delete", func(tx database.Tx) error {
		n, err := e.getNode(ctx, tx, id)
		if err != nil {
			return err
		}
		changed, err = e.setDeleted(ctx, tx, n, true)
		return err
	})
	if err != nil {
		return err
	}
	e.log.Info("node trashed", "op", "soft_delete", "id", id, "changed", changed)
	e.publish(EventNodeTrashed, map[string]int64{"id": id})
	return nil
}

// Restore takes a node and its subtree out of the trash, together with every trashed ancestor
// up to the first one that is not trashed.
func (e *Engine) Restore(ctx context.Context, id int64) error {
	var changed int
	err := e.mutate(ctx, "restore", func(tx database.Tx) error {
		n, err := e.getNode(ctx, tx, id)
		if err != nil {
			return err
		}

		restored := false
		seen := map[int64]bool{n.ID: true}
		for pid := n.ParentID; pid != nil && !seen[*pid]; {
			seen[*pid] = true
			ancestor, err := tx.GetNode(ctx, *pid)
			if err != nil {
				return err
			}
			if !ancestor.Deleted {
				break
			}
			if _, err := tx.UpdateNode(ctx, ancestor.ID, database.UpdateNodeParams{Deleted: &restored}); err != nil {
				return err
			}
			changed++
			pid = ancestor.ParentID
		}

		c, err := e.setDeleted(ctx, tx, n, false)
		changed += c
		return err
	})
	if err != nil {
		return err
	}
	e.log.Info("node restored", "op", "restore", "id", id, "changed", changed)
	e.publish(EventNodeRestored, map[string]int64{"id": id})
	return nil
}

// purge removes a node's storage entry and then its record and every descendant record.
func (e *Engine) purge(ctx context.Context, tx database.Tx, op string, n *models.Node) ([]int64, error) {
	var err error
	if n.IsFolder() {
		err = e.storage.RemoveAll(ctx, n.Path)
	} else {
		err = e.storage.Remove(ctx, n.Path)
	}
	switch {
	case errors.Is(err, storage.ErrNotExist):
		e.mismatch(op, n.Path, err)
	case err != nil:
		return nil, ioFailure(err, "failed to remove %q", n.Path)
	}

	subtree, err := collectSubtree(ctx, tx, n)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(subtree))
	for i := len(subtree) - 1; i >= 0; i-- {
		if err := tx.DeleteNode(ctx, subtree[i].ID); err != nil {
			return nil, err
		}
		ids = append(ids, subtree[i].ID)
	}
	return ids, nil
}

// PermanentDelete removes a node from storage and from the metadata store, subtree included.
func (e *Engine) PermanentDelete(ctx context.Context, id int64) error {
	var removed int
	err := e.mutate(ctx, "permanent_delete", func(tx database.Tx) error {
		n, err := e.getNode(ctx, tx, id)
		if err != nil {
			return err
		}
		ids, err := e.purge(ctx, tx, "permanent_delete", n)
		removed = len(ids)
		return err
	})
	if err != nil {
		return err
	}
	e.log.Info("node deleted permanently", "op", "permanent_delete", "id", id, "removed", removed)
	e.publish(EventNodeDeleted, map[string]int64{"id": id})
	return nil
}

// EmptyTrash permanently deletes every top-level trash entry and returns how many records went.
// A trashed node below a live folder inside a trashed folder is its own entry.
func (e *Engine) EmptyTrash(ctx context.Context) (int, error) {
	var removed int
	err := e.mutate(ctx, "empty_trash", func(tx database.Tx) error {
		trashed, err := tx.ScanNodes(ctx, func(n *models.Node) bool { return n.Deleted })
		if err != nil {
			return err
		}
		inTrash := make(map[int64]bool, len(trashed))
		for _, n := range trashed {
			inTrash[n.ID] = true
		}
		gone := make(map[int64]bool)
		for i := range trashed {
			n := &trashed[i]
			if gone[n.ID] || (n.ParentID != nil && inTrash[*n.ParentID]) {
				continue
			}
			ids, err := e.purge(ctx, tx, "empty_trash", n)
			if err != nil {
				return err
			}
			for _, id := range ids {
				gone[id] = true
			}
			removed += len(ids)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	e.log.Info("trash emptied", "op", "empty_trash", "removed", removed)
	e.publish(EventTrashEmptied, map[string]int{"removed": removed})
	return removed, nil
}
