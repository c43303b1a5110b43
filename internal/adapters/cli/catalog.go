package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/barrard/video-transcribe/internal/adapters/cli/tui"
)

var (
	catalogJSONFlag bool

	readyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	headingStyle = lipgloss.NewStyle().Bold(true)
)

// NewCatalogCmd creates the catalog subcommand
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List uploaded videos and their subtitle status",
		Args:  cobra.NoArgs,
		RunE:  runCatalog,
	}
	cmd.Flags().BoolVar(&catalogJSONFlag, "json", false, "Print entries as JSON, as served by /api/videos")
	return cmd
}

func runCatalog(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	entries, err := app.Catalog.List(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if catalogJSONFlag {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Fprintln(out)
	if len(entries) == 0 {
		fmt.Fprintln(out, "  No videos uploaded yet")
	} else {
		fmt.Fprintf(out, "  %-50s %s\n", headingStyle.Render("Video"), headingStyle.Render("Subtitles"))
		for _, entry := range entries {
			name := entry.StorageName()
			status, err := app.Catalog.Status(ctx, name)
			if err != nil {
				return err
			}

			state := pendingStyle.Render("not ready")
			if status.SubtitlesReady {
				state = readyStyle.Render("ready")
			} else if job, ok := app.Jobs.InFlight(name); ok {
				state = pendingStyle.Render(string(job.Status))
			}
			fmt.Fprintf(out, "  %-50s %s\n", name, state)
		}
	}

	stats, err := app.Catalog.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Items:     %d\n", stats.ItemCount)
	fmt.Fprintf(out, "  Size:      %s\n", tui.FormatSize(stats.TotalSize))
	fmt.Fprintf(out, "  Uploads:   %s\n", app.Store.UploadDir())
	fmt.Fprintf(out, "  Processed: %s\n", app.Store.ProcessedDir())
	fmt.Fprintln(out)

	return nil
}
