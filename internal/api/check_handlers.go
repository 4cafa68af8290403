package api

import "net/http"

type RepairResponse struct {
	Repaired int `json:"repaired" example:"3"`
}

// @Summary      Check tree consistency
// @Description  Compares every node's path with its ancestors and with storage. Read-only.
// @Tags         maintenance
// @Produce      json
// @Success      200  {object}  tree.Report
// @Router       /check [get]
func (s *Server) CheckHandler(w http.ResponseWriter, r *http.Request) {
	report, err := s.engine.Check(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// @Summary      Repair drifted paths
// @Description  Rewrites every stored path that disagrees with the ancestor chain. Storage is not touched.
// @Tags         maintenance
// @Produce      json
// @Success      200  {object}  RepairResponse
// @Router       /check/repair [post]
func (s *Server) RepairPathsHandler(w http.ResponseWriter, r *http.Request) {
	repaired, err := s.engine.RepairPaths(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RepairResponse{Repaired: repaired})
}
