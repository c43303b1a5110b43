package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/barrard/video-transcribe/internal/adapters/httpapi"
)

const shutdownGrace = 30 * time.Second

var addrFlag string

// NewServeCmd creates the serve subcommand
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and serve media and subtitles",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (default from config, :5000)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	addr := app.Config.Server.Addr
	if addrFlag != "" {
		addr = addrFlag
	}

	handler := httpapi.NewHandler(httpapi.Deps{
		Uploads:     app.Uploads,
		Catalog:     app.Catalog,
		Jobs:        app.Jobs,
		Transcripts: app.Transcripts,
		Static:      app.Store,
		Logger:      app.Logger,
	}, httpapi.Options{
		AllowedOrigins: app.Config.Server.AllowedOrigins,
		MaxUploadBytes: app.Config.MaxUploadBytes(),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if !app.Engine.IsAvailable() {
		app.Logger.Warn("transcription engine not found on PATH; uploads will fail until it is installed",
			"command", app.Engine.Name())
	}

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("listening",
			"addr", addr,
			"uploads", app.Store.UploadDir(),
			"processed", app.Store.ProcessedDir())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		app.Logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	// Stop taking requests first, then let queued jobs drain
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("http shutdown", "error", err)
	}
	if err := app.Jobs.Shutdown(shutdownCtx); err != nil {
		app.Logger.Warn("jobs cancelled before finishing", "error", err)
	}
	return nil
}
