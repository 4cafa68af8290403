package tree

import (
	"context"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/models"
)

// visitFunc sees each node of a subtree once. parent is the already-visited parent (nil for the
// subtree root), so changes a visitor makes to parent are visible when its children are visited.
type visitFunc func(n, parent *models.Node) error

// walkSubtree visits root and every descendant depth-first, parent before children and
// siblings in id order. The child lists are taken from one scan before the first visit.
func walkSubtree(ctx context.Context, tx database.Tx, root *models.Node, visit visitFunc) error {
	all, err := tx.ScanNodes(ctx, nil)
	if err != nil {
		return err
	}
	children := make(map[int64][]*models.Node)
	for i := range all {
		n := &all[i]
		if n.ParentID != nil {
			children[*n.ParentID] = append(children[*n.ParentID], n)
		}
	}

	seen := make(map[int64]bool)
	var walk func(n, parent *models.Node) error
	walk = func(n, parent *models.Node) error {
		if seen[n.ID] {
			return nil
		}
		seen[n.ID] = true
		if err := visit(n, parent); err != nil {
			return err
		}
		for _, c := range children[n.ID] {
			if err := walk(c, n); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root, nil)
}

// collectSubtree returns root and its descendants in walk order.
func collectSubtree(ctx context.Context, tx database.Tx, root *models.Node) ([]*models.Node, error) {
	var out []*models.Node
	err := walkSubtree(ctx, tx, root, func(n, _ *models.Node) error {
		out = append(out, n)
		return nil
	})
	return out, err
}

// isAncestor reports whether ancestorID appears on the parent chain of node (node itself included).
func isAncestor(ctx context.Context, tx database.Tx, ancestorID int64, node *models.Node) (bool, error) {
	seen := make(map[int64]bool)
	for cur := node; cur != nil; {
		if cur.ID == ancestorID {
			return true, nil
		}
		if cur.ParentID == nil || seen[cur.ID] {
			return false, nil
		}
		seen[cur.ID] = true
		next, err := tx.GetNode(ctx, *cur.ParentID)
		if err != nil {
			return false, err
		}
		cur = next
	}
	return false, nil
}

// rewritePaths recomputes the path of every descendant of root from its parent's path.
// root must already carry its new path.
func rewritePaths(ctx context.Context, tx database.Tx, root *models.Node) error {
	return walkSubtree(ctx, tx, root, func(n, parent *models.Node) error {
		if parent == nil {
			return nil
		}
		newPath := parent.Path + "/" + n.Name
		if newPath == n.Path {
			return nil
		}
		n.Path = newPath
		_, err := tx.UpdateNode(ctx, n.ID, database.UpdateNodeParams{Path: &newPath})
		return err
	})
}
