package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/barrard/video-transcribe/internal/adapters/engine"
	"github.com/barrard/video-transcribe/internal/adapters/storage"
	"github.com/barrard/video-transcribe/internal/application"
	"github.com/barrard/video-transcribe/internal/config"
	"github.com/barrard/video-transcribe/internal/jobs"
	"github.com/barrard/video-transcribe/internal/logging"
)

// App holds all application dependencies
type App struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Store      *storage.Store
	Engine     *engine.Transcriber

	Uploads     *application.UploadService
	Catalog     *application.CatalogService
	Jobs        *application.TranscriptionService
	Transcripts *application.TranscriptService
}

// NewApp loads configuration, prepares storage and wires up all dependencies
func NewApp(configPath, logLevel string) (*App, error) {
	if configPath == "" {
		configPath = config.ConfigPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger, err := logging.Setup(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}

	if err := config.Bootstrap(cfg); err != nil {
		return nil, err
	}

	timeout, err := cfg.GetEngineTimeout()
	if err != nil {
		return nil, err
	}

	store := storage.NewStore(afero.NewOsFs(), cfg.Storage.UploadDir, cfg.Storage.ProcessedDir)
	transcriber := engine.NewTranscriber(cfg.Engine.Command, cfg.Engine.Args)

	transcripts, err := application.NewTranscriptService(store, cfg.Cache.Transcripts)
	if err != nil {
		return nil, fmt.Errorf("transcript cache: %w", err)
	}

	jobSvc := application.NewTranscriptionService(
		store,
		transcriber,
		jobs.NewEventBus(cfg.Jobs.EventHistory),
		logger,
		application.TranscriptionOptions{
			MaxConcurrent: cfg.Jobs.MaxConcurrent,
			Timeout:       timeout,
			StderrLimit:   cfg.Engine.StderrLimit,
			JobHistory:    cfg.Jobs.JobHistory,
		},
	)

	return &App{
		Config:      cfg,
		ConfigPath:  configPath,
		Logger:      logger,
		Store:       store,
		Engine:      transcriber,
		Uploads:     application.NewUploadService(store, cfg.Storage.MediaExtensions),
		Catalog:     application.NewCatalogService(store, cfg.Storage.MediaExtensions),
		Jobs:        jobSvc,
		Transcripts: transcripts,
	}, nil
}

var globalApp *App

// GetApp returns the global app instance, creating it if needed
func GetApp() (*App, error) {
	if globalApp == nil {
		app, err := NewApp(configFlag, logLevelFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize: %w", err)
		}
		globalApp = app
	}
	return globalApp, nil
}
