package handlers

import (
	"net/http"

	"waste-route-service/internal/api/dto"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/services"
)

// FleetHandler exposes read-only inventory views.
type FleetHandler struct {
	Dispatcher *services.Dispatcher
}

func (h *FleetHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListVehiclesResponse{Vehicles: toVehicles(h.Dispatcher.Fleet().Vehicles)})
}

func (h *FleetHandler) Drivers(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListDriversResponse{Drivers: toDrivers(h.Dispatcher.Fleet().Drivers)})
}

// Available lists the vehicles and drivers not yet allotted.
func (h *FleetHandler) Available(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	fleet := h.Dispatcher.Fleet()
	writeJSON(w, r, http.StatusOK, dto.AvailabilityResponse{
		Vehicles: toVehicles(fleet.AvailableVehicles),
		Drivers:  toDrivers(fleet.AvailableDrivers),
	})
}

func (h *FleetHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	tasks := h.Dispatcher.Fleet().Tasks
	res := dto.ListTasksResponse{Tasks: make([]dto.TaskResponse, 0, len(tasks))}
	for i, t := range tasks {
		res.Tasks = append(res.Tasks, dto.TaskResponse{Index: i + 1, Area: t.Area, Quantity: t.Quantity})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func toVehicles(vs []domain.Vehicle) []dto.VehicleResponse {
	out := make([]dto.VehicleResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, dto.VehicleResponse{
			Model:        v.Model,
			LoadCapacity: v.LoadCapacity,
			Mileage:      v.Mileage,
			Allotted:     v.Allotted,
		})
	}
	return out
}

func toDrivers(ds []domain.Driver) []dto.DriverResponse {
	out := make([]dto.DriverResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, dto.DriverResponse{
			Name:     d.Name,
			Age:      d.Age,
			Address:  d.Address,
			Allotted: d.Allotted,
		})
	}
	return out
}
