// Package httpapi exposes uploads, the catalog, jobs and parsed transcripts
// over HTTP, and serves the media and subtitle files themselves.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/barrard/video-transcribe/internal/application"
	"github.com/barrard/video-transcribe/internal/domain"
)

// StaticFS exposes the stored files for direct download
type StaticFS interface {
	UploadFS() http.FileSystem
	ProcessedFS() http.FileSystem
}

// Deps are the services behind the HTTP routes
type Deps struct {
	Uploads     *application.UploadService
	Catalog     *application.CatalogService
	Jobs        *application.TranscriptionService
	Transcripts *application.TranscriptService
	Static      StaticFS
	Logger      *slog.Logger
}

// Options tune the transport
type Options struct {
	AllowedOrigins []string
	MaxUploadBytes int64
}

const (
	nameParam  = "name"
	idParam    = "id"
	indexParam = "index"
)

// NewHandler builds the router. Media and subtitles are served under the
// same paths catalog entries point at; everything else lives under /api.
func NewHandler(deps Deps, opts Options) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := mux.NewRouter()
	r.Use(requestLogger(logger))

	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/upload", &uploadHandler{
		uploads:  deps.Uploads,
		catalog:  deps.Catalog,
		jobs:     deps.Jobs,
		maxBytes: opts.MaxUploadBytes,
	}).Methods(http.MethodPost)
	api.Handle("/videos", &videosHandler{catalog: deps.Catalog}).Methods(http.MethodGet)
	api.Handle("/videos/{"+nameParam+"}/status", &statusHandler{catalog: deps.Catalog, jobs: deps.Jobs}).Methods(http.MethodGet)
	api.Handle("/videos/{"+nameParam+"}/transcribe", &transcribeHandler{catalog: deps.Catalog, jobs: deps.Jobs}).Methods(http.MethodPost)
	api.Handle("/jobs", &jobsHandler{jobs: deps.Jobs}).Methods(http.MethodGet)
	api.Handle("/jobs/events", &eventsHandler{jobs: deps.Jobs}).Methods(http.MethodGet)
	api.Handle("/jobs/{"+idParam+"}", &jobHandler{jobs: deps.Jobs}).Methods(http.MethodGet)
	api.Handle("/transcripts/{"+nameParam+"}", &transcriptHandler{transcripts: deps.Transcripts}).Methods(http.MethodGet)
	api.Handle("/transcripts/{"+nameParam+"}/active", &activeHandler{transcripts: deps.Transcripts}).Methods(http.MethodGet)
	api.Handle("/transcripts/{"+nameParam+"}/seek/{"+indexParam+":[0-9]+}", &seekHandler{transcripts: deps.Transcripts}).Methods(http.MethodGet)
	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { APINotFound(w) })

	r.PathPrefix(domain.VideoRoute).Handler(
		http.StripPrefix(domain.VideoRoute, http.FileServer(deps.Static.UploadFS()))).Methods(http.MethodGet, http.MethodHead)
	r.PathPrefix(domain.SubtitlesRoute).Handler(
		http.StripPrefix(domain.SubtitlesRoute, http.FileServer(deps.Static.ProcessedFS()))).Methods(http.MethodGet, http.MethodHead)

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(r)
}

// statusRecorder captures the response status for request logs
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(started))
		})
	}
}
