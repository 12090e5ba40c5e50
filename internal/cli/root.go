// Package cli implements the widgethost CLI commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/watchfire-io/widgethost/internal/config"
	"github.com/watchfire-io/widgethost/internal/host"
)

var (
	baseDir string
	display string
)

var rootCmd = &cobra.Command{
	Use:   "widgethost",
	Short: "Show desktop widgets from the system tray",
	Long: `Widgethost shows each widget folder as a small floating window and
keeps a tray menu to toggle them. Window positions and visibility are saved
beside the application when the host exits.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return host.Run(host.Options{BaseDir: baseDir, Display: display})
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseDir, "dir", "", "base directory (default: directory of the executable)")
	rootCmd.Flags().StringVar(&display, "display", "", "X display to use (default: $DISPLAY)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadPaths resolves the base directory from the --dir flag.
func loadPaths() (config.Paths, error) {
	return config.NewPaths(baseDir)
}
