package handlers

import (
	"net/http"
	"strings"

	"waste-route-service/internal/api/dto"
	"waste-route-service/internal/services"
)

// RouteHandler answers standalone route queries from the depot.
type RouteHandler struct {
	Dispatcher *services.Dispatcher
}

func (h *RouteHandler) Shortest(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "shortest route", h.Dispatcher.ShortestRoute)
}

// Longest reports the longest-path estimate. The route may be empty when the
// estimate's parent chain cannot be followed back to the depot.
func (h *RouteHandler) Longest(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "longest route", h.Dispatcher.LongestRoute)
}

func (h *RouteHandler) serve(w http.ResponseWriter, r *http.Request, op string, query func(string) (*services.RouteReport, error)) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if to == "" {
		writeError(w, r, http.StatusBadRequest, "query parameter 'to' is required")
		return
	}

	rep, err := query(to)
	if err != nil {
		writeDomainError(w, r, op, err)
		return
	}

	route := rep.Route
	if route == nil {
		route = []string{}
	}

	writeJSON(w, r, http.StatusOK, dto.RouteResponse{
		From:       rep.From,
		To:         rep.To,
		Distance:   rep.Distance,
		Route:      route,
		TravelTime: toTravelTime(rep.TravelTime),
		Heuristic:  rep.Heuristic,
	})
}
