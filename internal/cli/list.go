package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/widgethost/internal/config"
	"github.com/watchfire-io/widgethost/internal/models"
	"github.com/watchfire-io/widgethost/internal/widget"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List discovered widgets",
	Long: `List the widgets in the widgets folder with their size and the
position and visibility they will have on the next start.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	paths, err := loadPaths()
	if err != nil {
		return err
	}

	settings, err := config.LoadSettings(paths)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	dir := paths.WidgetsDir(settings.WidgetsDir)
	defs, err := widget.Discover(dir)
	if err != nil {
		return err
	}

	state, err := widget.NewStore(paths).Load()
	if err != nil {
		return err
	}

	printWidgets(cmd.OutOrStdout(), dir, defs, state)
	return nil
}

func printWidgets(out io.Writer, dir string, defs []models.WidgetDefinition, state *widget.State) {
	if len(defs) == 0 {
		fmt.Fprintf(out, "No widgets found in %s\n", dir)
		return
	}

	fmt.Fprintf(out, "%s %s\n\n", styleLabel.Render("Widgets in"), styleValue.Render(dir))

	width := 0
	for _, def := range defs {
		if n := len(def.Name); n > width {
			width = n
		}
	}

	for _, def := range defs {
		p, visible := state.Resolve(def.Name)
		badge := badgeShown.Render("shown ")
		if !visible {
			badge = badgeHidden.Render("hidden")
		}
		fmt.Fprintf(out, "  %s  %-*s  %4dx%-4d  at (%d, %d)\n", badge, width, def.Name, def.Width, def.Height, p.X, p.Y)
	}
}
