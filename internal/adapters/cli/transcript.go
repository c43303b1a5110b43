package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/barrard/video-transcribe/internal/adapters/cli/tui"
	"github.com/barrard/video-transcribe/internal/application"
	"github.com/barrard/video-transcribe/internal/domain"
)

var (
	transcriptFormatFlag string
	transcriptOutputFlag string
	srtFlag              bool
	atFlag               float64
	seekFlag             int
)

// NewTranscriptCmd creates the transcript subcommand
func NewTranscriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript <srt-file|video-name>",
		Short: "Parse a subtitle file and print or query it",
		Long: `Parses an SRT file, given by path or by the stored video it belongs to,
and prints it. With --at, prints only the segments active at that
playback time; with --seek, prints the start of one segment.`,
		Args: cobra.ExactArgs(1),
		RunE: runTranscript,
	}
	cmd.Flags().StringVar(&transcriptFormatFlag, "format", "text", "Output format: text, srt, segments, json")
	cmd.Flags().StringVarP(&transcriptOutputFlag, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&srtFlag, "srt", false, "Shorthand for --format srt")
	cmd.Flags().Float64Var(&atFlag, "at", 0, "Print the segments active at this time, in seconds")
	cmd.Flags().IntVar(&seekFlag, "seek", 0, "Print the start time of the segment with this index")
	return cmd
}

func runTranscript(cmd *cobra.Command, args []string) error {
	transcript, err := loadTranscript(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	flags := cmd.Flags()

	switch {
	case flags.Changed("at"):
		if atFlag < 0 {
			return fmt.Errorf("--at must not be negative")
		}
		at := domain.TimecodeFromSeconds(atFlag)
		active := transcript.Engine.ActiveSegments(at)
		if len(active) == 0 {
			fmt.Fprintf(out, "(no active segment at %s)\n", at.Format())
			return nil
		}
		for _, seg := range active {
			fmt.Fprintln(out, tui.FormatSegmentLine(seg, 0))
		}
		return nil

	case flags.Changed("seek"):
		start, err := transcript.Engine.Seek(seekFlag)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%.3fs)\n", start.Format(), start.Seconds())
		return nil
	}

	format := transcriptFormatFlag
	if srtFlag {
		format = "srt"
	}
	return writeDocument(out, transcript.Document, format, transcriptOutputFlag)
}

// loadTranscript parses arg as a local subtitle file when one exists,
// otherwise as the storage name of an uploaded video
func loadTranscript(ctx context.Context, arg string) (*application.Transcript, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		return application.NewTranscript(filepath.Base(arg), data)
	}

	app, err := GetApp()
	if err != nil {
		return nil, err
	}
	transcript, err := app.Transcripts.Load(ctx, arg)
	if errors.Is(err, domain.ErrSubtitlesNotReady) {
		if name, ok := resolveBaseName(ctx, app, arg); ok {
			return app.Transcripts.Load(ctx, name)
		}
	}
	return transcript, err
}

// resolveBaseName maps a catalog Filename back to its storage name
func resolveBaseName(ctx context.Context, app *App, base string) (string, bool) {
	entries, err := app.Catalog.List(ctx)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if entry.Filename == base {
			return entry.StorageName(), true
		}
	}
	return "", false
}
