package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/barrard/video-transcribe/internal/application"
	"github.com/barrard/video-transcribe/internal/domain"
)

// uploadField is the multipart field carrying the media file
const uploadField = "video"

// maxMemory is how much of a multipart upload is buffered before spilling to disk
const maxMemory = 32 << 20

type uploadHandler struct {
	uploads  *application.UploadService
	catalog  *application.CatalogService
	jobs     *application.TranscriptionService
	maxBytes int64
}

type uploadResponse struct {
	Job   domain.Job          `json:"job"`
	Entry domain.CatalogEntry `json:"entry"`
}

func (h *uploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			APIError(w, r, domain.ErrNoUpload)
			return
		}
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			APIError(w, r, err)
			return
		}
		APIBadRequest(w, err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if errors.Is(err, http.ErrMissingFile) {
		APIError(w, r, domain.ErrNoUpload)
		return
	} else if err != nil {
		APIBadRequest(w, err.Error())
		return
	}
	defer file.Close()

	artifact, err := h.uploads.Accept(r.Context(), application.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		APIError(w, r, err)
		return
	}

	job, err := h.jobs.Submit(r.Context(), artifact)
	if err != nil {
		APIError(w, r, err)
		return
	}
	entry := h.catalog.Resolve(artifact.StorageName)

	if wait, _ := strconv.ParseBool(r.FormValue("wait")); !wait {
		JSONResponse(w, http.StatusAccepted, &uploadResponse{Job: job, Entry: entry})
		return
	}

	job, err = h.jobs.Wait(r.Context(), job.ID)
	if err != nil {
		// client went away; the job keeps running
		APIError(w, r, err)
		return
	}
	if job.Status != domain.JobStatusSucceeded {
		JSONResponse(w, http.StatusBadGateway, &APIErrorResponse{
			Error:  domain.ErrTranscriptionFailed.Error(),
			Reason: job.FailureReason,
			JobID:  job.ID,
		})
		return
	}
	JSONResponse(w, http.StatusOK, entry)
}
