package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rctools",
	Short: "Tools for Rollcage game data",
	Long: `rctools provides utilities for working with Rollcage game files.

Supported operations:
  - Extract assets from IDX/IMG archive pairs
  - Decompress and compress GT20 streams
  - Convert BTP texture containers to BMP or PNG images`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	log.SetHandler(cli.Default)
	log.SetLevel(log.InfoLevel)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"print verbose progress information")
}
