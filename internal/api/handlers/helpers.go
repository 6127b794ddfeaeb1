package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"waste-route-service/internal/api/dto"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/obs"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode failed", "req_id", obs.RequestID(r.Context()), "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// allowMethod rejects any method other than method with 405.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// statusFor maps allocation and route errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownArea), errors.Is(err, domain.ErrUnknownTask):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoSuitableVehicle), errors.Is(err, domain.ErrNoRoute), errors.Is(err, domain.ErrNoDriver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError reports err with its mapped status. Unexpected errors are
// logged and hidden behind a generic message.
func writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(op+" failed", "req_id", obs.RequestID(r.Context()), "err", err)
		writeError(w, r, status, "internal server error")
		return
	}
	writeError(w, r, status, err.Error())
}

func toTravelTime(t domain.TravelTime) dto.TravelTimeResponse {
	return dto.TravelTimeResponse{Hours: t.Hours, Minutes: t.Minutes}
}

func toAllocation(rec domain.AllocationRecord) dto.AllocationResponse {
	route := rec.Route
	if route == nil {
		route = []string{}
	}
	return dto.AllocationResponse{
		ID:           rec.ID,
		Date:         rec.Date,
		VehicleModel: rec.VehicleModel,
		DriverName:   rec.DriverName,
		WasteArea:    rec.WasteArea,
		Distance:     rec.Distance,
		FuelRequired: rec.FuelRequired,
		TravelTime:   toTravelTime(rec.TravelTime),
		Route:        route,
		RouteText:    rec.RouteString(),
	}
}
