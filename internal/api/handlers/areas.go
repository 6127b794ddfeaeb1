package handlers

import (
	"net/http"

	"waste-route-service/internal/api/dto"
	"waste-route-service/internal/services"
)

// AreaHandler exposes the service-area graph.
type AreaHandler struct {
	Dispatcher *services.Dispatcher
}

func (h *AreaHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	g, depot := h.Dispatcher.Areas()

	res := dto.ListAreasResponse{
		Depot: depot,
		Areas: make([]dto.AreaResponse, 0, g.Len()),
	}
	for i, name := range g.Names() {
		nbs := g.Neighbors(i)
		area := dto.AreaResponse{
			Index:     i,
			Name:      name,
			Neighbors: make([]dto.NeighborResponse, 0, len(nbs)),
		}
		for _, nb := range nbs {
			area.Neighbors = append(area.Neighbors, dto.NeighborResponse{Name: g.Name(nb.Index), Distance: nb.Weight})
		}
		res.Areas = append(res.Areas, area)
	}

	writeJSON(w, r, http.StatusOK, res)
}
