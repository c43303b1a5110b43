package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

// NewDepsCmd creates the deps subcommand
func NewDepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Show whether the transcription engine can be found",
		Args:  cobra.NoArgs,
		RunE:  runDepsStatus,
	}
}

func runDepsStatus(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Dependency Status:")
	fmt.Fprintln(out)

	name := app.Engine.Name()
	if app.Engine.IsAvailable() {
		fmt.Fprintf(out, "  %-10s %s (%s)\n", name+":", readyStyle.Render("installed"), app.Engine.BinaryPath())
	} else {
		fmt.Fprintf(out, "  %-10s %s\n", name+":", pendingStyle.Render("not found"))
	}

	// stable-ts and whisper decode media through ffmpeg
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		fmt.Fprintf(out, "  %-10s %s (%s)\n", "ffmpeg:", readyStyle.Render("installed"), path)
	} else {
		fmt.Fprintf(out, "  %-10s %s\n", "ffmpeg:", pendingStyle.Render("not found"))
	}
	fmt.Fprintln(out)

	if !app.Engine.IsAvailable() {
		fmt.Fprintf(out, "Install %s or point engine.command in %s at another engine.\n", name, app.ConfigPath)
	}
	return nil
}
