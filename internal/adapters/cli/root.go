package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barrard/video-transcribe/internal/adapters/cli/tui"
	"github.com/barrard/video-transcribe/internal/domain"
)

var (
	// Global flags
	configFlag   string
	logLevelFlag string
	quietFlag    bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "video-transcribe",
		Short: "Transcribe uploaded videos and play their subtitles in sync",
		Long: `video-transcribe stores uploaded videos, runs a speech-to-text engine
on each one to produce an SRT subtitle file, and keeps the active
subtitle segments in sync with playback time.

Run 'video-transcribe serve' for the HTTP API, or use the subcommands
to transcribe and inspect files from the terminal.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default ~/.video-transcribe/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewTranscribeCmd())
	rootCmd.AddCommand(NewCatalogCmd())
	rootCmd.AddCommand(NewTranscriptCmd())
	rootCmd.AddCommand(NewPlayCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewDepsCmd())

	return rootCmd
}

// writeDocument renders doc in format to outputPath, or to w when no path is given
func writeDocument(w io.Writer, doc *domain.Document, format, outputPath string) error {
	if format == "" {
		format = "text"
	}

	var output string
	switch format {
	case "text":
		output = doc.Text()
	case "srt":
		output = doc.SRT()
	case "segments":
		lines := make([]string, 0, doc.Len())
		for _, seg := range doc.Segments {
			lines = append(lines, tui.FormatSegmentLine(seg, 0))
		}
		output = strings.Join(lines, "\n")
	case "json":
		jsonBytes, err := json.MarshalIndent(toJSONSegments(doc.Segments), "", "  ")
		if err != nil {
			return err
		}
		output = string(jsonBytes)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if outputPath != "" {
		return os.WriteFile(outputPath, []byte(output), 0644)
	}

	_, err := fmt.Fprintln(w, output)
	return err
}

type jsonSegment struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

func toJSONSegments(segments []domain.Segment) []jsonSegment {
	out := make([]jsonSegment, 0, len(segments))
	for _, seg := range segments {
		out = append(out, jsonSegment{
			Index: seg.Index,
			Start: seg.Start.Seconds(),
			End:   seg.End.Seconds(),
			Text:  seg.Text,
		})
	}
	return out
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
