package api

import (
	"net/http"

	"menedzer-plikow/internal/tree"
)

type StarResponse struct {
	Starred bool `json:"starred"`
}

// @Summary      Toggle the star
// @Tags         favorites
// @Produce      json
// @Param        nodeId  path      int  true  "Node ID"
// @Success      200     {object}  StarResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /nodes/{nodeId}/star [put]
func (s *Server) ToggleStarHandler(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := nodeIDParam(r)
	if !ok {
		writeBadRequest(w, "Invalid node ID")
		return
	}
	starred, err := s.engine.ToggleStar(r.Context(), nodeID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StarResponse{Starred: starred})
}

// @Summary      Add a node to favorites
// @Tags         favorites
// @Param        nodeId  path      int  true  "Node ID"
// @Success      204     {null}    nil  "No Content"
// @Failure      404     {object}  ErrorResponse
// @Router       /nodes/{nodeId}/favorite [post]
func (s *Server) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	s.setStarred(w, r, true)
}

// @Summary      Remove a node from favorites
// @Tags         favorites
// @Param        nodeId  path      int  true  "Node ID"
// @Success      204     {null}    nil  "No Content"
// @Failure      404     {object}  ErrorResponse
// @Router       /nodes/{nodeId}/favorite [delete]
func (s *Server) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	s.setStarred(w, r, false)
}

func (s *Server) setStarred(w http.ResponseWriter, r *http.Request, starred bool) {
	nodeID, ok := nodeIDParam(r)
	if !ok {
		writeBadRequest(w, "Invalid node ID")
		return
	}
	if err := s.engine.SetStarred(r.Context(), nodeID, starred); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary      List favorite nodes
// @Tags         favorites
// @Produce      json
// @Success      200  {array}   NodeResponse
// @Router       /favorites [get]
func (s *Server) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	nodes, err := s.engine.List(r.Context(), tree.Filter{View: tree.ViewStarred})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNodeResponses(paginate(nodes, limit, offset)))
}
