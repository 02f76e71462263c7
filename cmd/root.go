package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/user/nessus2csv/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "nessus2csv",
	Short: "Convert Nessus scan reports to CSV",
	Long: `nessus2csv flattens Nessus (.nessus v2 XML) reports into a single CSV file
with one row per finding, and can pull scan exports straight from a Nessus scanner.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetDebug(DebugMode)
	},
}

var DebugMode bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
}
