package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootVerbose bool

var rootCmd = &cobra.Command{
	Use:   "nextdeploy",
	Short: "nextdeploy - Next.js deployment tooling",
	Long: `nextdeploy builds Next.js sites with open-next and turns the build output
into a normalized deployment manifest for the provisioning layer.`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if rootVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Commands are registered in their respective files via init()
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Show debug output")
}
