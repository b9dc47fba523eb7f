package commands

import (
	"context"
	"fmt"
	"os"

	"farescan/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	verbose    *bool
	configPath *string
)

var rootCmd = &cobra.Command{
	Use:   "farescan",
	Short: "farescan is a CLI for scraping return flight fares from skyscanner.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if *verbose {
			telemetry.InitSlog(true)
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every stage and http request.")
	configPath = rootCmd.PersistentFlags().String("config", "farescan.json5", "The config file to read, a <name>.local.json5 next to it takes precedence.")
}

func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
