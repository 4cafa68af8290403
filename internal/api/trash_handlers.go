package api

import (
	"net/http"

	"menedzer-plikow/internal/tree"
)

type PurgeResponse struct {
	Removed int `json:"removed" example:"12"`
}

// @Summary      Purge trash
// @Description  Permanently deletes everything in the trash. This action cannot be undone.
// @Tags         trash
// @Produce      json
// @Success      200  {object}  PurgeResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /trash/purge [delete]
func (s *Server) PurgeTrashHandler(w http.ResponseWriter, r *http.Request) {
	removed, err := s.engine.EmptyTrash(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PurgeResponse{Removed: removed})
}

// @Summary      List trash contents
// @Tags         trash
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {array}   NodeResponse
// @Router       /trash [get]
func (s *Server) ListTrashHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	nodes, err := s.engine.List(r.Context(), tree.Filter{View: tree.ViewTrash})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNodeResponses(paginate(nodes, limit, offset)))
}

// @Summary      Restore a node from trash
// @Description  Restores the node with its subtree and every trashed folder above it.
// @Tags         nodes
// @Produce      json
// @Param        nodeId  path      int  true  "Node ID to restore"
// @Success      200     {object}  NodeResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /nodes/{nodeId}/restore [post]
func (s *Server) RestoreNodeHandler(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := nodeIDParam(r)
	if !ok {
		writeBadRequest(w, "Invalid node ID")
		return
	}
	if err := s.engine.Restore(r.Context(), nodeID); err != nil {
		s.writeError(w, r, err)
		return
	}
	node, err := s.engine.Get(r.Context(), nodeID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNodeResponse(node))
}
