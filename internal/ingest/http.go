package ingest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	httperrors "github.com/studydrill/studydrill/pkg/http/errors"
)

// HTTPHandler exposes the workbook import endpoint.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs the ingest HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "ingest_http").Logger(),
	}
}

type importRequest struct {
	Path string `json:"path"`
}

type importResponse struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

// HandleImport re-imports a workbook. An explicit path can be given in
// the body; otherwise the configured candidate paths are tried in order.
// Route: POST /v1/ingest
func (h *HTTPHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid json body")
		return
	}

	path := req.Path
	if path == "" {
		found, ok := h.svc.FindWorkbook()
		if !ok {
			httperrors.RespondNotFound(w, httperrors.ErrCodeWorkbookMissing, "no workbook found at any configured path")
			return
		}
		path = found
	} else if info, err := os.Stat(path); err != nil || info.IsDir() {
		httperrors.RespondNotFound(w, httperrors.ErrCodeWorkbookMissing, "workbook not found: "+path)
		return
	}

	rows, err := h.svc.ImportFile(r.Context(), path)
	if errors.Is(err, ErrIngestion) {
		httperrors.RespondUnprocessable(w, httperrors.ErrCodeIngestionFailed, err.Error())
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("path", path).Msg("import failed")
		httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeStoreUnavailable, "question store unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(importResponse{Path: path, Rows: rows})
}
