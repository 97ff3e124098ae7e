package ingest

import (
	"errors"
	"net/http"

	"obrasapi/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Upload handles POST /upload-obras. The CSV comes in the multipart form
// field "file".
func (h *HTTPHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "MISSING_FILE", "multipart field 'file' is required", nil)
		return
	}
	defer file.Close()

	report, err := h.svc.Run(r.Context(), file)
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			httpx.JSONError(w, http.StatusBadRequest, "MALFORMED_CSV", err.Error(), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(w, report)
}
