package tree

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"menedzer-plikow/internal/models"
)

func names(nodes []models.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestListViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	docs := env.folder(t, "Docs", nil)
	photos := env.folder(t, "Photos", nil)
	env.file(t, "big.pdf", &docs.ID, "0123456789")
	small := env.file(t, "small.txt", &docs.ID, "01")
	pic := env.file(t, "holiday.png", &photos.ID, "012345")
	env.file(t, "budget.xlsx", nil, "0123")
	gone := env.file(t, "old budget.xlsx", nil, "0")

	require.NoError(t, env.engine.SetStarred(ctx, small.ID, true))
	require.NoError(t, env.engine.SetStarred(ctx, gone.ID, true))
	require.NoError(t, env.engine.SetShared(ctx, pic.ID, true))
	require.NoError(t, env.engine.SetShared(ctx, gone.ID, true))
	require.NoError(t, env.engine.SoftDelete(ctx, gone.ID))

	list := func(f Filter) []string {
		t.Helper()
		nodes, err := env.engine.List(ctx, f)
		require.NoError(t, err)
		return names(nodes)
	}

	// folders first, then newest first
	require.Equal(t, []string{"Photos", "Docs", "budget.xlsx"}, list(Filter{}))
	require.Equal(t, []string{"Photos", "Docs", "budget.xlsx"}, list(Filter{View: ViewMyDrive}))
	require.Equal(t, []string{"small.txt", "big.pdf"}, list(Filter{ParentID: &docs.ID}))

	require.Equal(t, []string{"old budget.xlsx"}, list(Filter{View: ViewTrash}))
	require.Equal(t, []string{"holiday.png"}, list(Filter{View: ViewShared}))
	require.Equal(t, []string{"small.txt"}, list(Filter{View: ViewStarred}))
	require.Equal(t, []string{"small.txt"}, list(Filter{Starred: true}))

	// size first, folders (size 0) last
	require.Equal(t, []string{"big.pdf", "holiday.png", "budget.xlsx", "small.txt", "Photos", "Docs"},
		list(Filter{View: ViewStorage}))

	require.Equal(t, []string{"holiday.png", "small.txt", "budget.xlsx", "big.pdf", "Photos", "Docs"},
		list(Filter{View: ViewRecent}))

	require.Equal(t, []string{"Photos", "Docs", "holiday.png", "small.txt", "budget.xlsx", "big.pdf"},
		list(Filter{View: ViewHome}))

	// search beats every view and skips the trash
	require.Equal(t, []string{"budget.xlsx"}, list(Filter{View: ViewTrash, Search: "BUDGET"}))
	require.Equal(t, []string{"Photos", "Docs", "holiday.png"}, list(Filter{Search: "o", ParentID: &docs.ID, View: ViewStarred}))
	require.Empty(t, list(Filter{Search: "nothing"}))
	require.NotNil(t, list(Filter{Search: "nothing"}))
}

func TestListErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	f := env.file(t, "a.txt", nil, "a")

	_, err := env.engine.List(ctx, Filter{View: "everything"})
	requireKind(t, err, KindInvalidArgument)
	_, err = env.engine.List(ctx, Filter{ParentID: ptr(999)})
	requireKind(t, err, KindNotFound)
	_, err = env.engine.List(ctx, Filter{ParentID: &f.ID})
	requireKind(t, err, KindInvalidTarget)

	// a view ignores the parent entirely
	nodes, err := env.engine.List(ctx, Filter{View: ViewRecent, ParentID: ptr(999)})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
}

func TestListRecentIsCapped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < RecentLimit+5; i++ {
		env.file(t, fmt.Sprintf("f%02d.txt", i), nil, "x")
	}

	nodes, err := env.engine.List(ctx, Filter{View: ViewRecent})
	require.NoError(t, err)
	require.Len(t, nodes, RecentLimit)
	require.Equal(t, fmt.Sprintf("f%02d.txt", RecentLimit+4), nodes[0].Name)

	nodes, err = env.engine.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, nodes, RecentLimit+5)
}
