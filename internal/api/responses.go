package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"

	"menedzer-plikow/internal/models"
	"menedzer-plikow/internal/tree"
)

type NodeResponse struct {
	ID            int64     `json:"id" example:"42"`
	ParentID      *int64    `json:"parent_id"`
	Name          string    `json:"name" example:"Raport.docx"`
	Type          string    `json:"type" example:"document"`
	Size          int64     `json:"size" example:"1024"`
	SizeFormatted string    `json:"size_formatted" example:"1.0 kB"`
	Path          string    `json:"path" example:"uploads/Dokumenty/Raport.docx"`
	MimeType      string    `json:"mime_type,omitempty"`
	Owner         string    `json:"owner"`
	Starred       bool      `json:"starred"`
	Deleted       bool      `json:"deleted"`
	Shared        bool      `json:"shared"`
	CreatedAt     time.Time `json:"created_at"`
	ModifiedAt    time.Time `json:"modified_at"`
}

func toNodeResponse(n *models.Node) NodeResponse {
	resp := NodeResponse{
		ID:         n.ID,
		ParentID:   n.ParentID,
		Name:       n.Name,
		Type:       n.Type,
		Size:       n.Size,
		Path:       n.Path,
		MimeType:   n.MimeType,
		Owner:      n.Owner,
		Starred:    n.Starred,
		Deleted:    n.Deleted,
		Shared:     n.Shared,
		CreatedAt:  n.CreatedAt,
		ModifiedAt: n.ModifiedAt,
	}
	if !n.IsFolder() {
		resp.SizeFormatted = humanize.Bytes(uint64(n.Size))
	}
	return resp
}

func toNodeResponses(nodes []models.Node) []NodeResponse {
	out := make([]NodeResponse, 0, len(nodes))
	for i := range nodes {
		out = append(out, toNodeResponse(&nodes[i]))
	}
	return out
}

type ErrorResponse struct {
	Error   string `json:"error" example:"Conflict"`
	Message string `json:"message"`
}

var statusByKind = map[tree.Kind]int{
	tree.KindNotFound:        http.StatusNotFound,
	tree.KindConflict:        http.StatusConflict,
	tree.KindInvalidArgument: http.StatusBadRequest,
	tree.KindInvalidTarget:   http.StatusUnprocessableEntity,
	tree.KindIOFailure:       http.StatusInternalServerError,
}

// writeError maps engine errors onto status codes. Failures keep their details in the log only.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := tree.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	msg := err.Error()
	var te *tree.Error
	if errors.As(err, &te) && te.Message != "" {
		msg = te.Message
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Error: string(kind), Message: msg})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: string(tree.KindInvalidArgument), Message: msg})
}

func nodeIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "nodeId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseParentID reads an optional parent id; "" and "root" mean root level.
func parseParentID(raw string) (*int64, bool) {
	if raw == "" || raw == "root" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}
