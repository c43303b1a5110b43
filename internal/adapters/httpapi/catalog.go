package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/barrard/video-transcribe/internal/application"
	"github.com/barrard/video-transcribe/internal/domain"
)

type videosHandler struct {
	catalog *application.CatalogService
}

func (h *videosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalog.List(r.Context())
	if err != nil {
		APIError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.CatalogEntry{}
	}
	JSONResponse(w, http.StatusOK, entries)
}

type statusHandler struct {
	catalog *application.CatalogService
	jobs    *application.TranscriptionService
}

type statusResponse struct {
	*application.MediaStatus
	Job *domain.Job `json:"job,omitempty"`
}

func (h *statusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)[nameParam]
	status, err := h.catalog.Status(r.Context(), name)
	if err != nil {
		APIError(w, r, err)
		return
	}
	if !status.MediaExists {
		APINotFound(w)
		return
	}

	res := &statusResponse{MediaStatus: status}
	if job, ok := h.jobs.InFlight(name); ok {
		res.Job = &job
	}
	JSONResponse(w, http.StatusOK, res)
}

type transcribeHandler struct {
	catalog *application.CatalogService
	jobs    *application.TranscriptionService
}

// ServeHTTP starts a fresh job for media already in the catalog,
// the manual retry path after a failed transcription
func (h *transcribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)[nameParam]
	if !domain.HasExtension(name, h.catalog.Extensions()) {
		APIError(w, r, fmt.Errorf("%w: %s", domain.ErrUnsupportedMediaType, name))
		return
	}
	status, err := h.catalog.Status(r.Context(), name)
	if err != nil {
		APIError(w, r, err)
		return
	}
	if !status.MediaExists {
		APINotFound(w)
		return
	}

	job, err := h.jobs.Submit(r.Context(), domain.MediaArtifact{StorageName: name, OriginalName: name})
	if err != nil {
		APIError(w, r, err)
		return
	}
	JSONResponse(w, http.StatusAccepted, &uploadResponse{Job: job, Entry: status.Entry})
}
