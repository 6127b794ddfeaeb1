package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"waste-route-service/internal/api/dto"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/obs"
	"waste-route-service/internal/services"
)

// AllocationHandler runs allocations and lists the ledger.
type AllocationHandler struct {
	Dispatcher *services.Dispatcher
}

// Serve dispatches /allocations by method.
func (h *AllocationHandler) Serve(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.Create(w, r)
	case http.MethodGet:
		h.List(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Create allocates a vehicle and driver to an ad-hoc or registered task.
// A record that was committed but not persisted is still returned (201) with
// persisted=false.
func (h *AllocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	svcReq := services.AllocationRequest{
		Area:     strings.TrimSpace(req.Area),
		Quantity: req.Quantity,
		Date:     strings.TrimSpace(req.Date),
	}

	if req.TaskIndex != nil {
		if svcReq.Area != "" || req.Quantity != 0 {
			writeError(w, r, http.StatusBadRequest, "task_index cannot be combined with area or quantity")
			return
		}
		if *req.TaskIndex < 1 {
			writeError(w, r, http.StatusBadRequest, "task_index must be 1 or greater")
			return
		}
		svcReq.TaskIndex = *req.TaskIndex - 1
		svcReq.HasTaskIndex = true
	} else {
		if svcReq.Area == "" {
			writeError(w, r, http.StatusBadRequest, "area is required")
			return
		}
		if req.Quantity <= 0 {
			writeError(w, r, http.StatusBadRequest, "quantity must be positive")
			return
		}
	}

	rec, err := h.Dispatcher.Allocate(r.Context(), svcReq)
	persisted := true
	if err != nil {
		if !errors.Is(err, services.ErrNotPersisted) || rec == nil {
			writeDomainError(w, r, "allocate", err)
			return
		}
		persisted = false
	}

	res := toAllocation(*rec)
	if h.Dispatcher.Repository() != nil {
		res.Persisted = &persisted
	}

	writeJSON(w, r, http.StatusCreated, res)
}

// List returns the ledger, optionally for one date. source=store reads the
// configured ledger repository instead of the in-memory ledger.
func (h *AllocationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := strings.TrimSpace(q.Get("date"))
	if date != "" {
		if err := domain.ValidateDate(date); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	switch source := q.Get("source"); source {
	case "", "memory":
		h.listMemory(w, r, date)
	case "store":
		h.listStore(w, r, date)
	default:
		writeError(w, r, http.StatusBadRequest, "source must be one of: memory, store")
	}
}

func (h *AllocationHandler) listMemory(w http.ResponseWriter, r *http.Request, date string) {
	ledger := h.Dispatcher.Ledger()

	dates := ledger.Dates()
	if date != "" {
		dates = []string{date}
	}

	res := dto.ListAllocationsResponse{Source: "memory", Dates: make([]dto.LedgerDateResponse, 0, len(dates))}
	for _, d := range dates {
		res.Dates = append(res.Dates, toLedgerDate(d, ledger.Records(d)))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *AllocationHandler) listStore(w http.ResponseWriter, r *http.Request, date string) {
	repo := h.Dispatcher.Repository()
	if repo == nil {
		writeError(w, r, http.StatusBadRequest, "no ledger repository configured")
		return
	}

	ctx := r.Context()
	dates := []string{date}
	if date == "" {
		var err error
		dates, err = repo.Dates(ctx)
		if err != nil {
			slog.Error("list ledger dates failed", "req_id", obs.RequestID(ctx), "err", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	res := dto.ListAllocationsResponse{Source: "store", Dates: make([]dto.LedgerDateResponse, 0, len(dates))}
	for _, d := range dates {
		recs, err := repo.ListByDate(ctx, d)
		if err != nil {
			slog.Error("list stored allocations failed", "req_id", obs.RequestID(ctx), "date", d, "err", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		res.Dates = append(res.Dates, toLedgerDate(d, recs))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func toLedgerDate(date string, recs []domain.AllocationRecord) dto.LedgerDateResponse {
	out := dto.LedgerDateResponse{Date: date, Allocations: make([]dto.AllocationResponse, 0, len(recs))}
	for _, rec := range recs {
		out.Allocations = append(out.Allocations, toAllocation(rec))
	}
	return out
}
