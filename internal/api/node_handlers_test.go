package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"menedzer-plikow/internal/tree"
)

func TestAPI_CreateFolder_Success(t *testing.T) {
	api := newTestAPI(t)

	// Act
	folder := api.createFolder(t, "Nowy_Folder_Sukces", nil)

	// Assert
	require.Equal(t, "Nowy_Folder_Sukces", folder.Name)
	require.Equal(t, "folder", folder.Type)
	require.Equal(t, "uploads/Nowy_Folder_Sukces", folder.Path)
	require.Empty(t, folder.SizeFormatted)
	ok, err := api.storage.Exists(context.Background(), folder.Path)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAPI_CreateFolder_EmptyName(t *testing.T) {
	api := newTestAPI(t)

	rr := api.doJSON(t, http.MethodPost, "/api/v1/nodes/folder", CreateFolderRequest{Name: "  "})

	requireAPIError(t, rr, http.StatusBadRequest, tree.KindInvalidArgument)
}

func TestAPI_CreateFolder_NameConflict(t *testing.T) {
	// Arrange
	api := newTestAPI(t)
	api.createFolder(t, "Folder_Konfliktowy", nil)

	// Act
	rr := api.doJSON(t, http.MethodPost, "/api/v1/nodes/folder", CreateFolderRequest{Name: "Folder_Konfliktowy"})

	// Assert
	requireAPIError(t, rr, http.StatusConflict, tree.KindConflict)
	list := decode[[]NodeResponse](t, api.do(t, http.MethodGet, "/api/v1/nodes", nil, ""))
	require.Len(t, list, 1, "The number of nodes with this name should not increase")
}

func TestAPI_CreateFolder_BadInput(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodPost, "/api/v1/nodes/folder", nil, "application/json")
	requireAPIError(t, rr, http.StatusBadRequest, tree.KindInvalidArgument)

	missing := int64(999)
	rr = api.doJSON(t, http.MethodPost, "/api/v1/nodes/folder", CreateFolderRequest{Name: "X", ParentID: &missing})
	requireAPIError(t, rr, http.StatusNotFound, tree.KindNotFound)
}

func TestAPI_UploadAndDownload(t *testing.T) {
	// Arrange
	api := newTestAPI(t)
	folder := api.createFolder(t, "Dokumenty", nil)
	parent := strconv.FormatInt(folder.ID, 10)

	// Act
	rr := api.upload(t, "notatka.txt", "hello", parent)

	// Assert
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	node := decode[NodeResponse](t, rr)
	require.Equal(t, "notatka.txt", node.Name)
	require.Equal(t, "document", node.Type)
	require.Equal(t, int64(5), node.Size)
	require.Equal(t, "5 B", node.SizeFormatted)
	require.Equal(t, folder.ID, *node.ParentID)
	require.Equal(t, "uploads/Dokumenty/notatka.txt", node.Path)

	// ta sama nazwa dostaje przyrostek
	dup := decode[NodeResponse](t, api.upload(t, "notatka.txt", "again", parent))
	require.Equal(t, "notatka (1).txt", dup.Name)

	rr = api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/nodes/%d/download", node.ID), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "hello", rr.Body.String())
	require.Equal(t, "5", rr.Header().Get("Content-Length"))
	require.Contains(t, rr.Header().Get("Content-Disposition"), "notatka.txt")
	require.Contains(t, rr.Header().Get("Content-Type"), "text/plain")

	rr = api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/nodes/%d/download", folder.ID), nil, "")
	requireAPIError(t, rr, http.StatusUnprocessableEntity, tree.KindInvalidTarget)
}

func TestAPI_Download_LengthFollowsStoredBytes(t *testing.T) {
	// Arrange: plik na dysku urósł bez zmiany metadanych
	api := newTestAPI(t)
	node := decode[NodeResponse](t, api.upload(t, "log.txt", "short", ""))
	_, err := api.storage.Save(context.Background(), node.Path, strings.NewReader("much longer now"))
	require.NoError(t, err)

	// Act
	rr := api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/nodes/%d/download", node.ID), nil, "")

	// Assert
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "much longer now", rr.Body.String())
	require.Equal(t, strconv.Itoa(rr.Body.Len()), rr.Header().Get("Content-Length"))
}

func TestAPI_Upload_BadRequests(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodPost, "/api/v1/nodes/file", nil, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.upload(t, "a.txt", "a", "abc")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.upload(t, "a.txt", "a", "999")
	requireAPIError(t, rr, http.StatusNotFound, tree.KindNotFound)
}

func TestAPI_UpdateNode_RenameAndMove(t *testing.T) {
	// Arrange
	api := newTestAPI(t)
	a := api.createFolder(t, "A", nil)
	b := api.createFolder(t, "B", &a.ID)
	file := decode[NodeResponse](t, api.upload(t, "x.txt", "x", strconv.FormatInt(b.ID, 10)))

	// Act: zmiana nazwy
	newName := "Archiwum"
	rr := api.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/nodes/%d", a.ID), UpdateNodeRequest{Name: &newName})

	// Assert
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, "uploads/Archiwum", decode[PathResponse](t, rr).Path)
	got := decode[NodeResponse](t, api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/nodes/%d", file.ID), nil, ""))
	require.Equal(t, "uploads/Archiwum/B/x.txt", got.Path)

	// Act: przeniesienie do katalogu głównego
	rr = api.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/nodes/%d", b.ID), UpdateNodeRequest{MoveToRoot: true})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, "uploads/B", decode[PathResponse](t, rr).Path)

	// Act: przeniesienie do własnego potomka
	rr = api.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/nodes/%d", b.ID), UpdateNodeRequest{ParentID: &b.ID})
	requireAPIError(t, rr, http.StatusBadRequest, tree.KindInvalidArgument)

	rr = api.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/nodes/%d", a.ID), UpdateNodeRequest{ParentID: &file.ID})
	requireAPIError(t, rr, http.StatusUnprocessableEntity, tree.KindInvalidTarget)

	rr = api.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/nodes/%d", a.ID), UpdateNodeRequest{})
	requireAPIError(t, rr, http.StatusBadRequest, tree.KindInvalidArgument)

	taken := "B"
	rr = api.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/nodes/%d", a.ID), UpdateNodeRequest{Name: &taken})
	requireAPIError(t, rr, http.StatusConflict, tree.KindConflict)
}

func TestAPI_UpdateNode_CombinedChangeIsAllOrNothing(t *testing.T) {
	// Arrange
	api := newTestAPI(t)
	src := api.createFolder(t, "Src", nil)
	dst := api.createFolder(t, "Dst", nil)
	api.createFolder(t, "X", &dst.ID)
	file := decode[NodeResponse](t, api.upload(t, "a.txt", "abc", strconv.FormatInt(src.ID, 10)))

	// Act: nazwa zajęta w folderze docelowym
	taken := "X"
	rr := api.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/nodes/%d", file.ID), UpdateNodeRequest{Name: &taken, ParentID: &dst.ID})

	// Assert: ani zmiana nazwy, ani przeniesienie
	requireAPIError(t, rr, http.StatusConflict, tree.KindConflict)
	got := decode[NodeResponse](t, api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/nodes/%d", file.ID), nil, ""))
	require.Equal(t, "a.txt", got.Name)
	require.Equal(t, "uploads/Src/a.txt", got.Path)
	rr = api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/nodes/%d/download", file.ID), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "abc", rr.Body.String())

	// Act: wolna nazwa
	free := "b.txt"
	rr = api.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/nodes/%d", file.ID), UpdateNodeRequest{Name: &free, ParentID: &dst.ID})

	// Assert
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, "uploads/Dst/b.txt", decode[PathResponse](t, rr).Path)
	rr = api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/nodes/%d/download", file.ID), nil, "")
	require.Equal(t, "abc", rr.Body.String())

	// Act: do katalogu głównego pod nową nazwą
	top := "top.txt"
	rr = api.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/nodes/%d", file.ID), UpdateNodeRequest{Name: &top, MoveToRoot: true})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, "uploads/top.txt", decode[PathResponse](t, rr).Path)
}

func TestAPI_CopyNode(t *testing.T) {
	api := newTestAPI(t)
	report := decode[NodeResponse](t, api.upload(t, "Report.docx", "content", ""))

	rr := api.do(t, http.MethodPost, fmt.Sprintf("/api/v1/nodes/%d/copy", report.ID), nil, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.Equal(t, "Copy of Report.docx", decode[NodeResponse](t, rr).Name)

	rr = api.do(t, http.MethodPost, fmt.Sprintf("/api/v1/nodes/%d/copy", report.ID), nil, "")
	require.Equal(t, "Copy of Report (1).docx", decode[NodeResponse](t, rr).Name)

	rr = api.do(t, http.MethodPost, "/api/v1/nodes/999/copy", nil, "")
	requireAPIError(t, rr, http.StatusNotFound, tree.KindNotFound)
}

func TestAPI_InvalidNodeID(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/api/v1/nodes/abc", "/api/v1/nodes/-1", "/api/v1/nodes/0/download"} {
		rr := api.do(t, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusBadRequest, rr.Code, path)
	}
}

func TestAPI_ListNodes(t *testing.T) {
	// Arrange
	api := newTestAPI(t)
	docs := api.createFolder(t, "Docs", nil)
	for i := 0; i < 5; i++ {
		api.upload(t, fmt.Sprintf("plik%d.txt", i), "x", strconv.FormatInt(docs.ID, 10))
	}
	api.upload(t, "budget.xlsx", "1234", "")

	// Act & Assert
	root := decode[[]NodeResponse](t, api.do(t, http.MethodGet, "/api/v1/nodes", nil, ""))
	require.Len(t, root, 2)
	require.Equal(t, "Docs", root[0].Name, "folders come first")

	all := decode[[]NodeResponse](t, api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/nodes?parent_id=%d", docs.ID), nil, ""))
	require.Len(t, all, 5)
	page := decode[[]NodeResponse](t, api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/nodes?parent_id=%d&limit=2&offset=1", docs.ID), nil, ""))
	require.Equal(t, all[1:3], page)

	empty := decode[[]NodeResponse](t, api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/nodes?parent_id=%d&offset=10", docs.ID), nil, ""))
	require.Empty(t, empty)

	found := decode[[]NodeResponse](t, api.do(t, http.MethodGet, "/api/v1/nodes?search=BUDGET", nil, ""))
	require.Len(t, found, 1)

	storage := decode[[]NodeResponse](t, api.do(t, http.MethodGet, "/api/v1/nodes?view=storage", nil, ""))
	require.Equal(t, "budget.xlsx", storage[0].Name)

	requireAPIError(t, api.do(t, http.MethodGet, "/api/v1/nodes?view=everything", nil, ""), http.StatusBadRequest, tree.KindInvalidArgument)
	requireAPIError(t, api.do(t, http.MethodGet, "/api/v1/nodes?parent_id=x", nil, ""), http.StatusBadRequest, tree.KindInvalidArgument)
	requireAPIError(t, api.do(t, http.MethodGet, "/api/v1/nodes?parent_id=999", nil, ""), http.StatusNotFound, tree.KindNotFound)
	requireAPIError(t, api.do(t, http.MethodGet, "/api/v1/nodes?starred=maybe", nil, ""), http.StatusBadRequest, tree.KindInvalidArgument)
}
