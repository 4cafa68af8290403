package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"menedzer-plikow/internal/config"
	"menedzer-plikow/internal/database/memory"
	"menedzer-plikow/internal/logger"
	"menedzer-plikow/internal/metrics"
	"menedzer-plikow/internal/storage"
	"menedzer-plikow/internal/tree"
	"menedzer-plikow/internal/websocket"
)

type testAPI struct {
	server  *Server
	handler http.Handler
	storage storage.Storage
}

// newTestAPI składa serwer na magazynach w pamięci, bez bazy i bez dysku.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	st, err := storage.NewMemoryStorage()
	require.NoError(t, err)
	m := metrics.New()

	wsHub := websocket.NewHub(100, m, logger.Discard())
	go wsHub.Run()
	t.Cleanup(wsHub.Stop)

	store := memory.NewStore()
	engine := tree.New(store, st, tree.Options{
		MaxUploadBytes: 1 << 20,
		Logger:         logger.Discard(),
		Metrics:        m,
		Publisher:      wsHub,
	})

	cfg := &config.Config{
		Owner:   "me",
		Storage: config.StorageConfig{Type: "memory", RootPrefix: "uploads", MaxUploadBytes: 1 << 20},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	server := NewServer(cfg, engine, wsHub, m, logger.Discard())
	return &testAPI{server: server, handler: server.Router(), storage: st}
}

func (a *testAPI) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func (a *testAPI) doJSON(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return a.do(t, method, path, body, "application/json")
}

func (a *testAPI) createFolder(t *testing.T, name string, parentID *int64) NodeResponse {
	t.Helper()
	rr := a.doJSON(t, http.MethodPost, "/api/v1/nodes/folder", CreateFolderRequest{Name: name, ParentID: parentID})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[NodeResponse](t, rr)
}

func (a *testAPI) upload(t *testing.T, filename, content, parentID string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.Copy(fw, strings.NewReader(content))
	require.NoError(t, err)
	if parentID != "" {
		require.NoError(t, mw.WriteField("parent_id", parentID))
	}
	require.NoError(t, mw.Close())
	return a.do(t, http.MethodPost, "/api/v1/nodes/file", &buf, mw.FormDataContentType())
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func requireAPIError(t *testing.T, rr *httptest.ResponseRecorder, status int, kind tree.Kind) {
	t.Helper()
	require.Equal(t, status, rr.Code, rr.Body.String())
	resp := decode[ErrorResponse](t, rr)
	require.Equal(t, string(kind), resp.Error)
	require.NotEmpty(t, resp.Message)
}
