package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/user/nessus2csv/pkg/engine"
	"github.com/user/nessus2csv/pkg/export"
	"github.com/user/nessus2csv/pkg/logger"
	"github.com/user/nessus2csv/pkg/nessus"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Convert Nessus XML reports to a single CSV file",
	Long: `Converts the findings of one or more .nessus files into one CSV file, one row per finding.
The output is named after the first input plus the current month and year unless --output is given.
Any fields longer than 32,000 characters will be truncated.`,
	Example: "  nessus2csv parse weekly.nessus dmz.nessus",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		_, err := convertReports(args, output, time.Now())
		return err
	},
}

// convertReports flattens every readable report in paths into one CSV file and
// returns its path. Unreadable reports are logged and skipped; the CSV is still
// written for the rest, but the returned error lists them.
func convertReports(paths []string, output string, now time.Time) (string, error) {
	report := engine.NewReport(engine.DefaultSchema())

	var failed []string
	for _, path := range paths {
		doc, err := nessus.Load(path)
		if err != nil {
			logger.Errorf("%v", err)
			failed = append(failed, path)
			continue
		}
		n := report.AddDocument(doc)
		logger.Infof("%s: %d findings", path, n)
	}

	if len(failed) == len(paths) {
		return "", errors.Errorf("no report could be read: %s", strings.Join(failed, ", "))
	}

	if output == "" {
		output = export.OutputName(paths[0], now)
	}
	if err := export.WriteFile(output, report); err != nil {
		return "", err
	}
	logger.Debugf("%s", report.Summary())
	fmt.Printf("Saved %d findings to %s\n", report.Len(), output)

	if len(failed) > 0 {
		return output, errors.Errorf("%d of %d reports could not be read: %s",
			len(failed), len(paths), strings.Join(failed, ", "))
	}
	return output, nil
}

func init() {
	parseCmd.Flags().StringP("output", "o", "", "Output CSV path (default: derived from the first input)")
	rootCmd.AddCommand(parseCmd)
}
