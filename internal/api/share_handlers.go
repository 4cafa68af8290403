package api

import (
	"encoding/json"
	"net/http"
)

type ShareNodeRequest struct {
	Shared *bool `json:"shared"`
}

// @Summary      Share or unshare a node
// @Description  Sets the shared flag that feeds the "shared" view. There is no per-user access control.
// @Tags         shares
// @Accept       json
// @Param        nodeId  path      int               true  "Node ID"
// @Param        share   body      ShareNodeRequest  true  "New flag value"
// @Success      204     {null}    nil  "No Content"
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /nodes/{nodeId}/share [put]
func (s *Server) ShareNodeHandler(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := nodeIDParam(r)
	if !ok {
		writeBadRequest(w, "Invalid node ID")
		return
	}

	var req ShareNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Shared == nil {
		writeBadRequest(w, "Invalid request body, expected {\"shared\": true|false}")
		return
	}

	if err := s.engine.SetShared(r.Context(), nodeID, *req.Shared); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
