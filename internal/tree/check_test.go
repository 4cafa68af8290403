package tree

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"menedzer-plikow/internal/database"
)

func issuesOf(r *Report, kind IssueKind) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Kind == kind {
			out = append(out, is)
		}
	}
	return out
}

func TestCheckCleanTree(t *testing.T) {
	env := newTestEnv(t)

	a := env.folder(t, "A", nil)
	env.file(t, "x.txt", &a.ID, "x")

	report, err := env.engine.Check(context.Background())
	require.NoError(t, err)
	require.True(t, report.Clean())
	require.Equal(t, 2, report.Nodes)
}

func TestCheckFindsDisagreements(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.folder(t, "A", nil)
	b := env.folder(t, "B", &a.ID)
	x := env.file(t, "x.txt", &b.ID, "x")
	gone := env.file(t, "gone.txt", nil, "g")
	flip := env.folder(t, "Flip", nil)

	// a path written by hand behind the engine's back
	drifted := "uploads/elsewhere/B"
	require.NoError(t, env.store.ExecTx(ctx, func(tx database.Tx) error {
		_, err := tx.UpdateNode(ctx, b.ID, database.UpdateNodeParams{Path: &drifted})
		return err
	}))
	require.NoError(t, env.storage.Remove(ctx, gone.Path))
	require.NoError(t, env.storage.RemoveAll(ctx, flip.Path))
	_, err := env.storage.Save(ctx, flip.Path, strings.NewReader("not a dir"))
	require.NoError(t, err)
	require.NoError(t, env.storage.MkdirAll(ctx, "uploads/stray/inner"))
	_, err = env.storage.Save(ctx, "uploads/stray/inner/f.bin", strings.NewReader("f"))
	require.NoError(t, err)

	report, err := env.engine.Check(ctx)
	require.NoError(t, err)

	drift := issuesOf(report, IssuePathDrift)
	require.Len(t, drift, 1)
	require.Equal(t, b.ID, drift[0].NodeID)
	require.Equal(t, "uploads/A/B", drift[0].Expected)

	missing := issuesOf(report, IssueMissingPhysical)
	require.Len(t, missing, 2)
	require.ElementsMatch(t, []int64{b.ID, gone.ID}, []int64{missing[0].NodeID, missing[1].NodeID})

	mismatch := issuesOf(report, IssueTypeMismatch)
	require.Len(t, mismatch, 1)
	require.Equal(t, flip.ID, mismatch[0].NodeID)

	// the real directory of B has no node pointing at it any more
	orphans := issuesOf(report, IssueOrphan)
	var orphanPaths []string
	for _, o := range orphans {
		orphanPaths = append(orphanPaths, o.Path)
	}
	require.ElementsMatch(t, []string{"uploads/A/B", "uploads/stray"}, orphanPaths)

	// x is judged against the ancestor names, not against B's stored path
	for _, is := range report.Issues {
		require.NotEqual(t, x.ID, is.NodeID)
	}
}

func TestRepairPathsRewritesDrift(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.folder(t, "A", nil)
	b := env.folder(t, "B", &a.ID)
	x := env.file(t, "x.txt", &b.ID, "x")

	drifted := "uploads/wrong/B"
	wrongChild := "uploads/wrong/B/x.txt"
	require.NoError(t, env.store.ExecTx(ctx, func(tx database.Tx) error {
		if _, err := tx.UpdateNode(ctx, b.ID, database.UpdateNodeParams{Path: &drifted}); err != nil {
			return err
		}
		_, err := tx.UpdateNode(ctx, x.ID, database.UpdateNodeParams{Path: &wrongChild})
		return err
	}))

	repaired, err := env.engine.RepairPaths(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, repaired)
	require.Equal(t, "uploads/A/B", env.get(t, b.ID).Path)
	require.Equal(t, "uploads/A/B/x.txt", env.get(t, x.ID).Path)
	env.requireConsistent(t)

	repaired, err = env.engine.RepairPaths(ctx)
	require.NoError(t, err)
	require.Zero(t, repaired)
}

func TestCheckReportsMissingParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var orphanID int64
	require.NoError(t, env.store.ExecTx(ctx, func(tx database.Tx) error {
		n, err := tx.InsertNode(ctx, database.CreateNodeParams{
			ParentID: ptr(404),
			Name:     "lost.txt",
			Type:     "document",
			Path:     "uploads/lost.txt",
		})
		if err != nil {
			return err
		}
		orphanID = n.ID
		return nil
	}))

	report, err := env.engine.Check(ctx)
	require.NoError(t, err)
	missingParent := issuesOf(report, IssueMissingParent)
	require.Len(t, missingParent, 1)
	require.Equal(t, orphanID, missingParent[0].NodeID)
	require.Empty(t, issuesOf(report, IssuePathDrift))

	repaired, err := env.engine.RepairPaths(ctx)
	require.NoError(t, err)
	require.Zero(t, repaired)
}
