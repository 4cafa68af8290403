package tree

import (
	"context"
	"errors"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/models"
	"menedzer-plikow/internal/paths"
	"menedzer-plikow/internal/storage"
)

// Copy duplicates a node next to the original under a free "Copy of ..." name. Folders are
// copied with their whole subtree; every copy gets a fresh id and starts unstarred.
func (e *Engine) Copy(ctx context.Context, id int64) (*models.Node, error) {
	var root *models.Node
	var count int
	err := e.mutate(ctx, "copy", func(tx database.Tx) error {
		src, err := e.getNode(ctx, tx, id)
		if err != nil {
			return err
		}
		var parent *models.Node
		if src.ParentID != nil {
			if parent, err = e.getNode(ctx, tx, *src.ParentID); err != nil {
				return err
			}
		}

		name, err := paths.Unique(
			func(n int) string { return paths.CopyCandidate(src.Name, src.IsFolder(), n) },
			func(candidate string) (bool, error) {
				taken, err := tx.SiblingExists(ctx, candidate, src.ParentID, nil)
				if err != nil || taken {
					return taken, err
				}
				p, err := e.childPath(parent, candidate)
				if err != nil {
					return false, err
				}
				exists, err := e.storage.Exists(ctx, p)
				if err != nil {
					return false, ioFailure(err, "failed to check %q", p)
				}
				return exists, nil
			},
		)
		if err != nil {
			return err
		}
		dstPath, err := e.childPath(parent, name)
		if err != nil {
			return err
		}

		if err := e.storage.Copy(ctx, src.Path, dstPath); err != nil {
			if !errors.Is(err, storage.ErrNotExist) {
				return ioFailure(err, "failed to copy %q to %q", src.Path, dstPath)
			}
			e.mismatch("copy", src.Path, err)
			if src.IsFolder() {
				if err := e.storage.MkdirAll(ctx, dstPath); err != nil {
					return ioFailure(err, "failed to create directory %q", dstPath)
				}
			}
		}

		now := *e.timestamp()
		copies := make(map[int64]*models.Node)
		return walkSubtree(ctx, tx, src, func(n, orig *models.Node) error {
			arg := database.CreateNodeParams{
				Name:       n.Name,
				Type:       n.Type,
				Size:       n.Size,
				MimeType:   n.MimeType,
				Owner:      n.Owner,
				Deleted:    n.Deleted,
				Shared:     n.Shared,
				CreatedAt:  now,
				ModifiedAt: now,
			}
			if orig == nil {
				arg.Name = name
				arg.ParentID = src.ParentID
				arg.Path = dstPath
			} else {
				newParent := copies[orig.ID]
				arg.ParentID = &newParent.ID
				arg.Path = newParent.Path + "/" + n.Name
			}
			created, err := tx.InsertNode(ctx, arg)
			if err != nil {
				return err
			}
			copies[n.ID] = created
			if orig == nil {
				root = created
			}
			count++
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("node copied", "op", "copy", "id", id, "copy_id", root.ID, "path", root.Path, "nodes", count)
	e.publish(EventNodeCreated, root)
	return root, nil
}
