package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barrard/video-transcribe/internal/adapters/cli/tui"
	"github.com/barrard/video-transcribe/internal/domain"
	"github.com/barrard/video-transcribe/internal/playback"
)

// NewPlayCmd creates the play subcommand
func NewPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play [srt-file|video-name]",
		Short: "Play a transcript in the terminal with synced highlighting",
		Long: `Plays a transcript against a terminal clock, highlighting the segments
active at each moment. Select a line and press enter to jump to it.
Without an argument, pick one of the transcribed videos.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPlay,
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 1 {
		target = args[0]
	} else {
		picked, err := pickTranscribedVideo(cmd)
		if err != nil {
			return err
		}
		if picked == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
		target = picked
	}

	transcript, err := loadTranscript(cmd.Context(), target)
	if err != nil {
		if errors.Is(err, domain.ErrSubtitlesNotReady) {
			return fmt.Errorf("%s has no subtitles yet; run 'video-transcribe transcribe' first", target)
		}
		return err
	}
	return tui.RunPlayer(transcript.Name, transcript.Document)
}

// pickTranscribedVideo offers the videos whose subtitles exist
func pickTranscribedVideo(cmd *cobra.Command) (string, error) {
	app, err := GetApp()
	if err != nil {
		return "", err
	}

	ctx := cmd.Context()
	entries, err := app.Catalog.List(ctx)
	if err != nil {
		return "", err
	}

	var options []tui.MenuOption
	for _, entry := range entries {
		name := entry.StorageName()
		status, err := app.Catalog.Status(ctx, name)
		if err != nil {
			return "", err
		}
		if !status.SubtitlesReady {
			continue
		}
		option := tui.MenuOption{Label: entry.Filename, Value: name}
		if transcript, err := app.Transcripts.Load(ctx, name); err == nil {
			doc := transcript.Document
			option.Detail = fmt.Sprintf("%d segments, %s", len(doc.Segments), playback.Duration(doc).Format())
		}
		options = append(options, option)
	}
	if len(options) == 0 {
		return "", errors.New("no transcribed videos yet")
	}

	return tui.RunMenu("Which video?", options)
}
