package tree

import (
	"context"
	"errors"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/models"
	"menedzer-plikow/internal/paths"
	"menedzer-plikow/internal/storage"
)

// relocate moves the physical entry of a node. A missing source is a mismatch, not a failure;
// an occupied destination is a conflict.
func (e *Engine) relocate(ctx context.Context, op, oldPath, newPath string) error {
	if oldPath == newPath {
		return nil
	}
	err := e.storage.Rename(ctx, oldPath, newPath)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotExist):
		e.mismatch(op, oldPath, err)
		return nil
	case errors.Is(err, storage.ErrExist):
		return conflict("%q already exists in storage", newPath)
	default:
		return ioFailure(err, "failed to move %q to %q", oldPath, newPath)
	}
}

// Rename gives a node a new name and returns its new path. Descendant paths follow.
func (e *Engine) Rename(ctx context.Context, id int64, newName string) (string, error) {
	var renamed *models.Node
	var oldPath string
	err := e.mutate(ctx, "rename", func(tx database.Tx) error {
		name, err := validName(newName)
		if err != nil {
			return err
		}
		n, err := e.getNode(ctx, tx, id)
		if err != nil {
			return err
		}
		if n.Name == name {
			renamed = n
			oldPath = n.Path
			return nil
		}
		taken, err := tx.SiblingExists(ctx, name, n.ParentID, &n.ID)
		if err != nil {
			return err
		}
		if taken {
			return conflict("a node named %q already exists in this folder", name)
		}

		oldPath = n.Path
		newPath := paths.ReplaceLast(n.Path, name)
		if err := e.relocate(ctx, "rename", oldPath, newPath); err != nil {
			return err
		}

		renamed, err = tx.UpdateNode(ctx, id, database.UpdateNodeParams{
			Name:       &name,
			Path:       &newPath,
			ModifiedAt: e.timestamp(),
		})
		if err != nil {
			return err
		}
		if renamed.IsFolder() {
			return rewritePaths(ctx, tx, renamed)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	e.log.Info("node renamed", "op", "rename", "id", id, "old_path", oldPath, "new_path", renamed.Path)
	e.publish(EventNodeUpdated, renamed)
	return renamed.Path, nil
}

// Move reparents a node under newParentID (nil for root level) and returns its new path.
// A node can never be moved into itself or below itself.
func (e *Engine) Move(ctx context.Context, id int64, newParentID *int64) (string, error) {
	var moved *models.Node
	var oldPath string
	err := e.mutate(ctx, "move", func(tx database.Tx) error {
		n, err := e.getNode(ctx, tx, id)
		if err != nil {
			return err
		}
		if newParentID != nil && *newParentID == id {
			return invalidArgument("node %d cannot be moved into itself", id)
		}
		target, err := e.resolveParent(ctx, tx, newParentID)
		if err != nil {
			return err
		}
		if target != nil {
			inside, err := isAncestor(ctx, tx, id, target)
			if err != nil {
				return err
			}
			if inside {
				return invalidArgument("node %d cannot be moved into its own descendant %d", id, target.ID)
			}
		}
		if models.SameParent(n.ParentID, newParentID) {
			moved = n
			oldPath = n.Path
			return nil
		}
		taken, err := tx.SiblingExists(ctx, n.Name, newParentID, &n.ID)
		if err != nil {
			return err
		}
		if taken {
			return conflict("a node named %q already exists in the target folder", n.Name)
		}

		oldPath = n.Path
		newPath, err := e.childPath(target, n.Name)
		if err != nil {
			return err
		}
		if err := e.relocate(ctx, "move", oldPath, newPath); err != nil {
			return err
		}

		upd := database.UpdateNodeParams{
			Path:       &newPath,
			ModifiedAt: e.timestamp(),
		}
		if newParentID == nil {
			upd.MoveToRoot = true
		} else {
			upd.ParentID = newParentID
		}
		moved, err = tx.UpdateNode(ctx, id, upd)
		if err != nil {
			return err
		}
		if moved.IsFolder() {
			return rewritePaths(ctx, tx, moved)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	e.log.Info("node moved", "op", "move", "id", id, "old_path", oldPath, "new_path", moved.Path)
	e.publish(EventNodeMoved, moved)
	return moved.Path, nil
}

// RenameAndMove gives a node a new name and a new parent (nil for root level) in one step.
// Nothing changes unless both succeed.
func (e *Engine) RenameAndMove(ctx context.Context, id int64, newName string, newParentID *int64) (string, error) {
	var moved *models.Node
	var oldPath string
	err := e.mutate(ctx, "rename_move", func(tx database.Tx) error {
		name, err := validName(newName)
		if err != nil {
			return err
		}
		n, err := e.getNode(ctx, tx, id)
		if err != nil {
			return err
		}
		if newParentID != nil && *newParentID == id {
			return invalidArgument("node %d cannot be moved into itself", id)
		}
		target, err := e.resolveParent(ctx, tx, newParentID)
		if err != nil {
			return err
		}
		if target != nil {
			inside, err := isAncestor(ctx, tx, id, target)
			if err != nil {
				return err
			}
			if inside {
				return invalidArgument("node %d cannot be moved into its own descendant %d", id, target.ID)
			}
		}
		oldPath = n.Path
		if n.Name == name && models.SameParent(n.ParentID, newParentID) {
			moved = n
			return nil
		}
		taken, err := tx.SiblingExists(ctx, name, newParentID, &n.ID)
		if err != nil {
			return err
		}
		if taken {
			return conflict("a node named %q already exists in the target folder", name)
		}

		newPath, err := e.childPath(target, name)
		if err != nil {
			return err
		}
		if err := e.relocate(ctx, "rename_move", oldPath, newPath); err != nil {
			return err
		}

		upd := database.UpdateNodeParams{
			Name:       &name,
			Path:       &newPath,
			ModifiedAt: e.timestamp(),
		}
		if newParentID == nil {
			upd.MoveToRoot = true
		} else {
			upd.ParentID = newParentID
		}
		moved, err = tx.UpdateNode(ctx, id, upd)
		if err != nil {
			return err
		}
		if moved.IsFolder() {
			return rewritePaths(ctx, tx, moved)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	e.log.Info("node renamed and moved", "op", "rename_move", "id", id, "old_path", oldPath, "new_path", moved.Path)
	e.publish(EventNodeMoved, moved)
	return moved.Path, nil
}
