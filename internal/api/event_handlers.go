package api

import (
	"net/http"
	"strconv"

	"menedzer-plikow/internal/websocket"
)

// EventResponse is the journal entry returned to clients catching up after a disconnect.
type EventResponse = websocket.Event

// @Summary      Get new events
// @Description  Retrieves the events recorded after a given event ID. Used for client-side cache synchronization. Only the most recent events are kept.
// @Tags         events
// @Produce      json
// @Param        since  query     int  false  "The ID of the last event received. Omit or use 0 to get all events."
// @Param        limit  query     int  false  "Maximum number of events"
// @Success      200    {array}   EventResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /events [get]
func (s *Server) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	sinceStr := r.URL.Query().Get("since")
	if sinceStr == "" {
		sinceStr = "0"
	}

	sinceID, err := strconv.ParseInt(sinceStr, 10, 64)
	if err != nil {
		writeBadRequest(w, "Invalid 'since' parameter, must be a number")
		return
	}

	limit, _ := parsePagination(r)
	events, err := s.wsHub.EventsSince(sinceID, limit)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, events)
}
