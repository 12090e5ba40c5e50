package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/widgethost/internal/config"
	"github.com/watchfire-io/widgethost/internal/models"
	"github.com/watchfire-io/widgethost/internal/widget"
)

var resetCmd = &cobra.Command{
	Use:   "reset [name...]",
	Short: "Forget saved widget positions and visibility",
	Long: `Forget the saved position and visibility of the named widgets, so
they start visible at (0, 0). Without names, both state files are removed.

The widget host saves state when it exits, so reset refuses to run while a
host is running.`,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	paths, err := loadPaths()
	if err != nil {
		return err
	}

	running, info, err := config.IsHostRunning(paths)
	if err != nil {
		return fmt.Errorf("failed to check host status: %w", err)
	}
	if running {
		return fmt.Errorf("widget host is running (PID %d); exit it first", info.PID)
	}

	names := make([]models.WidgetName, 0, len(args))
	for _, arg := range args {
		names = append(names, models.WidgetName(arg))
	}

	if err := widget.NewStore(paths).Forget(names...); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintln(out, styleSuccess.Render("Cleared all saved widget state."))
		return nil
	}
	for _, name := range names {
		fmt.Fprintf(out, "%s %s\n", styleSuccess.Render("Reset"), name)
	}
	return nil
}
