package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/widgethost/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a widget host is running",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	paths, err := loadPaths()
	if err != nil {
		return err
	}

	running, info, err := config.IsHostRunning(paths)
	if err != nil {
		return fmt.Errorf("failed to check host status: %w", err)
	}

	out := cmd.OutOrStdout()
	if !running || info == nil {
		fmt.Fprintln(out, styleHint.Render("Widget host is not running."))
		return nil
	}

	uptime := time.Since(info.StartedAt).Truncate(time.Second)

	fmt.Fprintln(out, styleSuccess.Render("Widget host is running."))
	fmt.Fprintf(out, "  %s %d\n", styleLabel.Render("PID:     "), info.PID)
	fmt.Fprintf(out, "  %s %d\n", styleLabel.Render("Widgets: "), info.WidgetCount)
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Base dir:"), info.BaseDir)
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Uptime:  "), uptime)
	return nil
}
