package practice

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/studydrill/studydrill/pkg/http/errors"
)

// HTTPHandler exposes REST endpoints for practicing and statistics.
type HTTPHandler struct {
	svc               *Service
	logger            zerolog.Logger
	mostMissedDefault int
	mostMissedMax     int
}

// NewHTTPHandler constructs the practice HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger, mostMissedDefault, mostMissedMax int) *HTTPHandler {
	if mostMissedDefault <= 0 {
		mostMissedDefault = 10
	}
	if mostMissedMax <= 0 {
		mostMissedMax = 50
	}
	return &HTTPHandler{
		svc:               svc,
		logger:            logger.With().Str("component", "practice_http").Logger(),
		mostMissedDefault: mostMissedDefault,
		mostMissedMax:     mostMissedMax,
	}
}

// HandleNext serves the next question to present.
// Route: GET /v1/practice/next
func (h *HTTPHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.NextQuestion(r.Context())
	if errors.Is(err, ErrNoQuestions) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNoQuestions, "no questions available; import a workbook first")
		return
	}
	if err != nil {
		h.storeError(w, err, "select next question")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

type recordAttemptRequest struct {
	QuestionID int64 `json:"question_id"`
	Passed     *bool `json:"passed"`
}

// HandleRecordAttempt applies one pass/fail outcome.
// Route: POST /v1/practice/attempts
func (h *HTTPHandler) HandleRecordAttempt(w http.ResponseWriter, r *http.Request) {
	var req recordAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid json body")
		return
	}
	if req.QuestionID <= 0 {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "question_id is required", "question_id")
		return
	}
	if req.Passed == nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "passed is required", "passed")
		return
	}

	q, err := h.svc.RecordAttempt(r.Context(), req.QuestionID, *req.Passed)
	if errors.Is(err, ErrNotFound) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "question not found")
		return
	}
	if err != nil {
		h.storeError(w, err, "record attempt")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// HandleListQuestions returns the full question set.
// Route: GET /v1/questions
func (h *HTTPHandler) HandleListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.svc.ListQuestions(r.Context())
	if err != nil {
		h.storeError(w, err, "list questions")
		return
	}
	if questions == nil {
		questions = []Question{}
	}
	writeJSON(w, http.StatusOK, questions)
}

// HandleGetQuestion returns one question by id.
// Route: GET /v1/questions/{id}
func (h *HTTPHandler) HandleGetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "question id must be a positive integer")
		return
	}

	q, err := h.svc.GetQuestion(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "question not found")
		return
	}
	if err != nil {
		h.storeError(w, err, "get question")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// HandleSummary returns aggregate statistics.
// Route: GET /v1/stats/summary
func (h *HTTPHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.GetSummary(r.Context())
	if err != nil {
		h.storeError(w, err, "compute summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleMostMissed returns the most-missed ranking.
// Route: GET /v1/stats/most-missed?limit=N
func (h *HTTPHandler) HandleMostMissed(w http.ResponseWriter, r *http.Request) {
	limit := h.mostMissedDefault
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
		if limit > h.mostMissedMax {
			limit = h.mostMissedMax
		}
	}

	questions, err := h.svc.MostMissed(r.Context(), limit)
	if err != nil {
		h.storeError(w, err, "rank most missed")
		return
	}
	if questions == nil {
		questions = []Question{}
	}
	writeJSON(w, http.StatusOK, questions)
}

// HandleReset zeroes all attempt counters.
// Route: POST /v1/stats/reset
func (h *HTTPHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ResetStats(r.Context()); err != nil {
		h.storeError(w, err, "reset statistics")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *HTTPHandler) storeError(w http.ResponseWriter, err error, action string) {
	h.logger.Error().Err(err).Str("action", action).Msg("store operation failed")
	httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeStoreUnavailable, "question store unavailable")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
