package tree

import (
	"context"
	"errors"
	"fmt"
	"io"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/models"
	"menedzer-plikow/internal/storage"
)

func (e *Engine) updateFlags(ctx context.Context, op string, id int64, build func(n *models.Node) database.UpdateNodeParams) (*models.Node, error) {
	var updated *models.Node
	err := e.mutate(ctx, op, func(tx database.Tx) error {
		n, err := e.getNode(ctx, tx, id)
		if err != nil {
			return err
		}
		upd := build(n)
		upd.ModifiedAt = e.timestamp()
		updated, err = tx.UpdateNode(ctx, id, upd)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.log.Debug("node flags updated", "op", op, "id", id, "starred", updated.Starred, "shared", updated.Shared)
	e.publish(EventNodeUpdated, updated)
	return updated, nil
}

// ToggleStar flips the starred flag and returns the new value.
func (e *Engine) ToggleStar(ctx context.Context, id int64) (bool, error) {
	n, err := e.updateFlags(ctx, "toggle_star", id, func(n *models.Node) database.UpdateNodeParams {
		starred := !n.Starred
		return database.UpdateNodeParams{Starred: &starred}
	})
	if err != nil {
		return false, err
	}
	return n.Starred, nil
}

func (e *Engine) SetStarred(ctx context.Context, id int64, starred bool) error {
	_, err := e.updateFlags(ctx, "set_starred", id, func(*models.Node) database.UpdateNodeParams {
		return database.UpdateNodeParams{Starred: &starred}
	})
	return err
}

func (e *Engine) SetShared(ctx context.Context, id int64, shared bool) error {
	_, err := e.updateFlags(ctx, "set_shared", id, func(*models.Node) database.UpdateNodeParams {
		return database.UpdateNodeParams{Shared: &shared}
	})
	return err
}

// Open returns a file node together with a reader over its bytes. The caller closes the reader.
// The returned node's Size is the size of the stored bytes, which wins over a drifted metadata size.
func (e *Engine) Open(ctx context.Context, id int64) (*models.Node, io.ReadCloser, error) {
	n, err := e.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if n.IsFolder() {
		return nil, nil, &Error{Kind: KindInvalidTarget, Op: "open", Message: "folders cannot be downloaded"}
	}
	rc, err := e.storage.Open(ctx, n.Path)
	if errors.Is(err, storage.ErrNotExist) {
		e.mismatch("open", n.Path, err)
		return nil, nil, &Error{Kind: KindNotFound, Op: "open", Message: "file content is missing", Err: err}
	}
	if err != nil {
		return nil, nil, &Error{Kind: KindIOFailure, Op: "open", Message: "failed to open file", Err: err}
	}
	entry, err := e.storage.Stat(ctx, n.Path)
	if err != nil {
		rc.Close()
		return nil, nil, &Error{Kind: KindIOFailure, Op: "open", Message: "failed to stat file", Err: err}
	}
	if entry.Size != n.Size {
		e.mismatch("open", n.Path, fmt.Errorf("stored size %d, metadata size %d", entry.Size, n.Size))
		n.Size = entry.Size
	}
	return n, rc, nil
}
