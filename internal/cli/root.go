// Package cli wires the editing pipeline into a command-line tool:
// one-shot adjustment runs, image statistics and the HTTP preview
// server.
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "retouch",
	Short: "Interactive raster image editing pipeline",
	Long: `retouch applies tone, color, spatial and analysis operators to raster
images. Adjustments are non-destructive: every run composes the full
operator chain over the untouched original in a fixed order.

Use "apply" for one-shot edits, "stats" for histogram and palette
inspection, and "serve" to drive an interactive browser front-end.`,
	Version: version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"retouch %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}
