package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notedeck/notedeck/pkg/config"
)

// Set at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "notedeck: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:   "notedeck",
		Short: "Toast notification server",
		Long: `notedeck keeps a stack of short-lived toast notifications and streams
them to the browser over DataStar SSE. Toasts expire on their own, pause
while hovered or focused, and can be published over HTTP or from presets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if len(envFiles) == 0 {
				return nil
			}
			return config.LoadEnv(envFiles...)
		},
	}

	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load before reading configuration")
	cmd.AddCommand(serveCmd(), versionCmd())
	return cmd
}
