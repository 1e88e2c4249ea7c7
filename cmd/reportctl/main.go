// Command reportctl seeds a council database and prints reports from it.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options are the persistent flags shared by every subcommand.
type options struct {
	dbPath       string
	organization string
	logLevel     string
	callerName   string
	format       string
	outDir       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "reportctl",
		Short:         "Seed the council database and print reports",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts.logLevel)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.dbPath, "db", envOr("DB_PATH", "./data/council.db"), "SQLite database path")
	flags.StringVar(&opts.organization, "org", envOr("ORG_NAME", "SIT Council"), "organization printed in report headers")
	flags.StringVar(&opts.logLevel, "log-level", envOr("LOG_LEVEL", "info"), "log level (debug, info, warn, error)")

	root.AddCommand(newSeedCmd(opts))
	for _, cmd := range newReportCmds(opts) {
		cmd.Flags().StringVar(&opts.callerName, "as", "", "name printed as the report requester")
		cmd.Flags().StringVar(&opts.format, "format", "text", "output format (text, json)")
		cmd.Flags().StringVar(&opts.outDir, "out", "", "write the report into this directory instead of stdout")
		root.AddCommand(cmd)
	}
	return root
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
