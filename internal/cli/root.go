package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rodood-db",
	Short: "PostgreSQL connectivity tooling for the Rodood backend",
	Long: `rodood-db manages the PostgreSQL connection layer used by the Rodood
backend: it builds a bounded connection pool from layered configuration
(flags, environment, rodood-db.yaml) and probes database reachability
with classified, bounded retry.

Exit Codes:
  0  - Success (database reachable)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid or missing configuration
  11 - Database unreachable after all probe attempts
  12 - Probe aborted before a verdict was reached`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for rodood-db")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
