package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barrard/video-transcribe/internal/application"
	"github.com/barrard/video-transcribe/internal/jobs"
)

type jobsHandler struct {
	jobs *application.TranscriptionService
}

func (h *jobsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, h.jobs.List())
}

type jobHandler struct {
	jobs *application.TranscriptionService
}

func (h *jobHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.Get(mux.Vars(r)[idParam])
	if err != nil {
		APIError(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, job)
}

type eventsHandler struct {
	jobs *application.TranscriptionService
}

type eventsResponse struct {
	Events  []jobs.Event `json:"events"`
	LastSeq int64        `json:"lastSeq"`
}

// ServeHTTP returns events after ?since=N so clients can poll incrementally
func (h *eventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var since int64
	if raw := r.FormValue("since"); raw != "" {
		var err error
		since, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || since < 0 {
			APIBadRequest(w, "since must be a non-negative integer")
			return
		}
	}

	bus := h.jobs.Events()
	JSONResponse(w, http.StatusOK, &eventsResponse{
		Events:  bus.Since(since),
		LastSeq: bus.LastSeq(),
	})
}
