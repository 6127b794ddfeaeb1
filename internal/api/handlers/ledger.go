package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"waste-route-service/internal/adapters/export"
	"waste-route-service/internal/api/dto"
	"waste-route-service/internal/platform/obs"
	"waste-route-service/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LedgerHandler renders the in-memory ledger as reports and appends the
// text report to ExportPath.
type LedgerHandler struct {
	Dispatcher *services.Dispatcher
	ExportPath string
}

// Export serves GET (download, format=text|xlsx) and POST (append the text
// report to the export file).
func (h *LedgerHandler) Export(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.download(w, r)
	case http.MethodPost:
		h.appendFile(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *LedgerHandler) download(w http.ResponseWriter, r *http.Request) {
	ledger := h.Dispatcher.Ledger()

	var buf bytes.Buffer
	var contentType, filename string

	switch format := r.URL.Query().Get("format"); format {
	case "", "text":
		contentType, filename = "text/plain; charset=utf-8", "ledger.txt"
		if err := export.WriteText(&buf, ledger); err != nil {
			h.fail(w, r, "render text ledger", err)
			return
		}
	case "xlsx":
		contentType, filename = xlsxContentType, "ledger.xlsx"
		if err := export.WriteExcel(&buf, ledger); err != nil {
			h.fail(w, r, "render xlsx ledger", err)
			return
		}
	default:
		writeError(w, r, http.StatusBadRequest, "format must be one of: text, xlsx")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *LedgerHandler) appendFile(w http.ResponseWriter, r *http.Request) {
	if h.ExportPath == "" {
		writeError(w, r, http.StatusBadRequest, "no export path configured")
		return
	}

	ledger := h.Dispatcher.Ledger()
	if err := export.AppendTextFile(h.ExportPath, ledger); err != nil {
		h.fail(w, r, "append ledger file", err)
		return
	}

	slog.Info("ledger exported", "req_id", obs.RequestID(r.Context()), "path", h.ExportPath, "records", ledger.Len())
	writeJSON(w, r, http.StatusOK, dto.ExportFileResponse{Path: h.ExportPath, Records: ledger.Len()})
}

// File returns the contents of the export file; 204 when it is missing or empty.
func (h *LedgerHandler) File(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if h.ExportPath == "" {
		writeError(w, r, http.StatusBadRequest, "no export path configured")
		return
	}

	b, err := export.ReadTextFile(h.ExportPath)
	if err != nil {
		h.fail(w, r, "read ledger file", err)
		return
	}
	if len(b) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *LedgerHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error(op+" failed", "req_id", obs.RequestID(r.Context()), "path", h.ExportPath, "err", err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}
