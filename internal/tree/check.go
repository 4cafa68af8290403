package tree

import (
	"context"
	"errors"
	"strings"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/models"
	"menedzer-plikow/internal/storage"
)

type IssueKind string

const (
	IssuePathDrift       IssueKind = "PathDrift"
	IssueMissingPhysical IssueKind = "MissingPhysical"
	IssueTypeMismatch    IssueKind = "TypeMismatch"
	IssueMissingParent   IssueKind = "MissingParent"
	IssueOrphan          IssueKind = "Orphan"
)

// Issue is one disagreement found by Check. NodeID is zero for orphans.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	NodeID   int64     `json:"node_id,omitempty"`
	Path     string    `json:"path"`
	Expected string    `json:"expected,omitempty"`
}

type Report struct {
	Nodes  int     `json:"nodes"`
	Issues []Issue `json:"issues"`
}

func (r *Report) Clean() bool { return len(r.Issues) == 0 }

// expectedPaths derives every node's path from its ancestor chain. Nodes whose chain is broken
// are left out and reported through missing.
func (e *Engine) expectedPaths(nodes []models.Node) (expected map[int64]string, missing []int64) {
	byID := make(map[int64]*models.Node, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}
	expected = make(map[int64]string, len(nodes))
	broken := make(map[int64]bool)

	var resolve func(n *models.Node, depth int) (string, bool)
	resolve = func(n *models.Node, depth int) (string, bool) {
		if p, ok := expected[n.ID]; ok {
			return p, true
		}
		if broken[n.ID] || depth > len(nodes) {
			return "", false
		}
		var p string
		if n.ParentID == nil {
			p = e.rootPrefix + "/" + n.Name
		} else {
			parent, ok := byID[*n.ParentID]
			if !ok {
				broken[n.ID] = true
				missing = append(missing, n.ID)
				return "", false
			}
			pp, ok := resolve(parent, depth+1)
			if !ok {
				broken[n.ID] = true
				return "", false
			}
			p = pp + "/" + n.Name
		}
		expected[n.ID] = p
		return p, true
	}
	for i := range nodes {
		resolve(&nodes[i], 0)
	}
	return expected, missing
}

// Check compares every node's path with its ancestor chain and with storage, and lists storage
// entries under the root prefix that no node points at. It changes nothing.
func (e *Engine) Check(ctx context.Context) (*Report, error) {
	var nodes []models.Node
	err := e.view(ctx, func(tx database.Tx) error {
		var err error
		nodes, err = tx.ScanNodes(ctx, nil)
		return err
	})
	if err != nil {
		return nil, classify("check", err)
	}

	report := &Report{Nodes: len(nodes), Issues: []Issue{}}
	expected, missing := e.expectedPaths(nodes)
	for _, id := range missing {
		for i := range nodes {
			if nodes[i].ID == id {
				report.Issues = append(report.Issues, Issue{Kind: IssueMissingParent, NodeID: id, Path: nodes[i].Path})
			}
		}
	}

	known := make(map[string]bool, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		known[n.Path] = true
		if want, ok := expected[n.ID]; ok && want != n.Path {
			report.Issues = append(report.Issues, Issue{Kind: IssuePathDrift, NodeID: n.ID, Path: n.Path, Expected: want})
		}

		entry, err := e.storage.Stat(ctx, n.Path)
		switch {
		case errors.Is(err, storage.ErrNotExist):
			report.Issues = append(report.Issues, Issue{Kind: IssueMissingPhysical, NodeID: n.ID, Path: n.Path})
		case err != nil:
			return nil, &Error{Kind: KindIOFailure, Op: "check", Message: "failed to stat " + n.Path, Err: err}
		case entry.IsDir != n.IsFolder():
			report.Issues = append(report.Issues, Issue{Kind: IssueTypeMismatch, NodeID: n.ID, Path: n.Path})
		}
	}

	var orphanDirs []string
	err = e.storage.Walk(ctx, e.rootPrefix, func(entry storage.Entry) error {
		if known[entry.Path] {
			return nil
		}
		for _, dir := range orphanDirs {
			if strings.HasPrefix(entry.Path, dir+"/") {
				return nil
			}
		}
		if entry.IsDir {
			orphanDirs = append(orphanDirs, entry.Path)
		}
		report.Issues = append(report.Issues, Issue{Kind: IssueOrphan, Path: entry.Path})
		return nil
	})
	if err != nil {
		return nil, &Error{Kind: KindIOFailure, Op: "check", Message: "failed to walk storage", Err: err}
	}

	if !report.Clean() {
		e.log.Warn("consistency check found issues", "op", "check", "nodes", report.Nodes, "issues", len(report.Issues))
	}
	return report, nil
}

// RepairPaths rewrites every drifted path from the ancestor chain and returns how many nodes
// changed. Storage is left as it is; nodes with a broken chain are skipped.
func (e *Engine) RepairPaths(ctx context.Context) (int, error) {
	repaired := 0
	err := e.mutate(ctx, "repair_paths", func(tx database.Tx) error {
		nodes, err := tx.ScanNodes(ctx, nil)
		if err != nil {
			return err
		}
		expected, _ := e.expectedPaths(nodes)
		for i := range nodes {
			n := &nodes[i]
			want, ok := expected[n.ID]
			if !ok || want == n.Path {
				continue
			}
			if _, err := tx.UpdateNode(ctx, n.ID, database.UpdateNodeParams{Path: &want}); err != nil {
				return err
			}
			e.log.Info("path repaired", "op", "repair_paths", "id", n.ID, "old_path", n.Path, "new_path", want)
			repaired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return repaired, nil
}
