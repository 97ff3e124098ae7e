package export

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"obrasapi/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Download handles GET /file-obras. Optional data_inicial and data_final
// query parameters bound created_at inclusively; both accept RFC 3339 or a
// plain YYYY-MM-DD date.
func (h *HTTPHandler) Download(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r, "data_inicial")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_DATE", err.Error(), nil)
		return
	}
	to, err := parseDateParam(r, "data_final")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_DATE", err.Error(), nil)
		return
	}

	obras, err := h.svc.Export(r.Context(), from, to)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if len(obras) == 0 {
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "no obras to export", nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="obras.csv"`)
	if err := WriteCSV(w, obras); err != nil {
		// Headers are already out; all we can do is log.
		log.Printf("export write failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
	}
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s must be RFC 3339 or YYYY-MM-DD", name)
}
