package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/barrard/video-transcribe/internal/adapters/cli/tui"
	"github.com/barrard/video-transcribe/internal/application"
	"github.com/barrard/video-transcribe/internal/domain"
)

var (
	formatFlag string
	outputFlag string
)

// NewTranscribeCmd creates the transcribe subcommand
func NewTranscribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcribe <media-file>",
		Short: "Store a video and transcribe it into subtitles",
		Long: `Copies the video into the upload directory, runs the transcription
engine on it and writes <name>.srt into the processed directory.`,
		Args: cobra.ExactArgs(1),
		RunE: runTranscribe,
	}
	cmd.Flags().StringVar(&formatFlag, "format", "", "Also print the transcript: text, srt, segments, json")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the printed transcript to a file")
	return cmd
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	steps := []string{"Checking engine", "Storing media", "Transcribing"}
	progress := tui.NewProgressDisplay(steps, quietFlag)

	// Step 1: the engine must be on PATH
	progress.StartStep(0)
	if !app.Engine.IsAvailable() {
		progress.FailStep(0, app.Engine.Name()+" not found")
		return fmt.Errorf("%s not found on PATH; install it or set engine.command in %s",
			app.Engine.Name(), app.ConfigPath)
	}
	progress.CompleteStep(0)

	// Step 2: copy into the upload directory
	progress.StartStep(1)
	f, err := os.Open(path)
	if err != nil {
		progress.FailStep(1, err.Error())
		return err
	}
	defer f.Close()

	artifact, err := app.Uploads.Accept(ctx, application.Upload{
		Filename: filepath.Base(path),
		Body: &progressReader{r: f, onRead: func(n int64) {
			progress.UpdateProgress(1, n, info.Size())
		}},
	})
	if err != nil {
		progress.FailStep(1, err.Error())
		return err
	}
	progress.CompleteStep(1)

	// Step 3: run the job and wait for it
	progress.StartStep(2)
	spinnerDone := progress.StartSpinner()

	job, err := app.Jobs.Submit(ctx, artifact)
	if err == nil {
		job, err = app.Jobs.Wait(ctx, job.ID)
	}
	close(spinnerDone)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := app.Jobs.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}

	if err != nil {
		progress.FailStep(2, err.Error())
		return err
	}
	if job.Status != domain.JobStatusSucceeded {
		progress.FailStep(2, job.FailureReason)
		return fmt.Errorf("%w: %s", domain.ErrTranscriptionFailed, job.FailureReason)
	}
	progress.CompleteStep(2)

	progress.Complete([][2]string{
		{"Video", app.Store.MediaPath(artifact.StorageName)},
		{"Subtitles", job.ResultPath},
		{"Took", job.Duration().Round(time.Millisecond).String()},
	})

	if formatFlag == "" && outputFlag == "" {
		return nil
	}
	transcript, err := app.Transcripts.Load(ctx, artifact.StorageName)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyDocument) {
			fmt.Fprintln(cmd.OutOrStdout(), "(no speech detected)")
			return nil
		}
		return err
	}
	return writeDocument(cmd.OutOrStdout(), transcript.Document, formatFlag, outputFlag)
}

// progressReader reports the running byte count after every read
type progressReader struct {
	r      io.Reader
	n      int64
	onRead func(int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.n += int64(n)
	if p.onRead != nil {
		p.onRead(p.n)
	}
	return n, err
}
