package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/barrard/video-transcribe/internal/application"
	"github.com/barrard/video-transcribe/internal/domain"
)

// JSONContentType is the value used for the Content-Type header on JSON responses
const JSONContentType = "application/json"

// APIErrorResponse is the body of every non-2xx JSON response
type APIErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	JobID  string `json:"jobId,omitempty"`
}

// JSONResponse writes res encoded as JSON with the given status
func JSONResponse(w http.ResponseWriter, statusCode int, res any) {
	w.Header().Set("Content-Type", JSONContentType)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// APIError maps err onto a status code and writes it. Server-side failures
// are logged and their details withheld from the client.
func APIError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		JSONResponse(w, status, &APIErrorResponse{Error: http.StatusText(status)})
		return
	}

	res := &APIErrorResponse{Error: err.Error()}
	var inFlight *domain.InFlightError
	if errors.As(err, &inFlight) {
		res.JobID = inFlight.JobID
	}
	JSONResponse(w, status, res)
}

// APIBadRequest writes a 400 with msg
func APIBadRequest(w http.ResponseWriter, msg string) {
	JSONResponse(w, http.StatusBadRequest, &APIErrorResponse{Error: msg})
}

// APINotFound writes a 404
func APINotFound(w http.ResponseWriter) {
	JSONResponse(w, http.StatusNotFound, &APIErrorResponse{Error: "not found"})
}

func statusForError(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrNoUpload):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrJobInFlight):
		return http.StatusConflict
	case errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrSubtitlesNotReady),
		errors.Is(err, domain.ErrSegmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMalformedBlock),
		errors.Is(err, domain.ErrMalformedTimecode),
		errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, application.ErrServiceClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
