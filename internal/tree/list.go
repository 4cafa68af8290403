package tree

import (
	"context"
	"sort"
	"strings"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/models"
)

const (
	ViewMyDrive = "my-drive"
	ViewHome    = "home"
	ViewRecent  = "recent"
	ViewStarred = "starred"
	ViewShared  = "shared"
	ViewTrash   = "trash"
	ViewStorage = "storage"
)

// RecentLimit caps the recent view.
const RecentLimit = 50

// Filter selects one listing. A non-empty Search wins over everything else, then the view,
// then Starred; with none of them set the children of ParentID are listed.
type Filter struct {
	View     string
	ParentID *int64
	Search   string
	Starred  bool
}

var knownViews = map[string]bool{
	"":          true,
	ViewMyDrive: true,
	ViewHome:    true,
	ViewRecent:  true,
	ViewStarred: true,
	ViewShared:  true,
	ViewTrash:   true,
	ViewStorage: true,
}

// List returns the nodes selected by f from one consistent snapshot.
func (e *Engine) List(ctx context.Context, f Filter) ([]models.Node, error) {
	if !knownViews[f.View] {
		return nil, &Error{Kind: KindInvalidArgument, Op: "list", Message: "unknown view " + f.View}
	}

	var out []models.Node
	err := e.view(ctx, func(tx database.Tx) error {
		match, order, err := e.selectListing(ctx, tx, f)
		if err != nil {
			return err
		}
		out, err = tx.ScanNodes(ctx, match)
		if err != nil {
			return err
		}
		order(out)
		if f.Search == "" && f.View == ViewRecent && len(out) > RecentLimit {
			out = out[:RecentLimit]
		}
		return nil
	})
	if err != nil {
		return nil, classify("list", err)
	}
	if out == nil {
		out = []models.Node{}
	}
	return out, nil
}

func (e *Engine) selectListing(ctx context.Context, tx database.Tx, f Filter) (func(*models.Node) bool, func([]models.Node), error) {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		return func(n *models.Node) bool {
			return !n.Deleted && strings.Contains(strings.ToLower(n.Name), needle)
		}, sortDefault, nil
	}

	switch {
	case f.View == ViewTrash:
		return func(n *models.Node) bool { return n.Deleted }, sortDefault, nil
	case f.View == ViewShared:
		return func(n *models.Node) bool { return n.Shared && !n.Deleted }, sortDefault, nil
	case f.View == ViewStorage:
		return live, sortBySize, nil
	case f.View == ViewRecent:
		return live, sortRecent, nil
	case f.View == ViewHome:
		return live, sortDefault, nil
	case f.View == ViewStarred || f.Starred:
		return func(n *models.Node) bool { return n.Starred && !n.Deleted }, sortDefault, nil
	}

	if _, err := e.resolveParent(ctx, tx, f.ParentID); err != nil {
		return nil, nil, err
	}
	return func(n *models.Node) bool {
		return !n.Deleted && models.SameParent(n.ParentID, f.ParentID)
	}, sortDefault, nil
}

func live(n *models.Node) bool { return !n.Deleted }

// less puts folders first, then newer modifications, then lower ids.
func less(a, b *models.Node) bool {
	if a.IsFolder() != b.IsFolder() {
		return a.IsFolder()
	}
	if !a.ModifiedAt.Equal(b.ModifiedAt) {
		return a.ModifiedAt.After(b.ModifiedAt)
	}
	return a.ID < b.ID
}

func sortDefault(nodes []models.Node) {
	sort.SliceStable(nodes, func(i, j int) bool { return less(&nodes[i], &nodes[j]) })
}

func sortBySize(nodes []models.Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Size != nodes[j].Size {
			return nodes[i].Size > nodes[j].Size
		}
		return less(&nodes[i], &nodes[j])
	})
}

func sortRecent(nodes []models.Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if !nodes[i].ModifiedAt.Equal(nodes[j].ModifiedAt) {
			return nodes[i].ModifiedAt.After(nodes[j].ModifiedAt)
		}
		return nodes[i].ID < nodes[j].ID
	})
}
