package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/user/nessus2csv/pkg/config"
	"github.com/user/nessus2csv/pkg/logger"
	"github.com/user/nessus2csv/pkg/nessusapi"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Export and download scan reports from a Nessus scanner",
	Long: `Lists the folders and scans on the configured Nessus scanner, then exports every scan
of the chosen folder (or "all") in .nessus format and saves it under <dir>/<folder>.
Scanner URL and API keys come from 'nessus2csv config set-scanner' or NESSUS_* variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, _ := cmd.Flags().GetString("folder")
		dir, _ := cmd.Flags().GetString("dir")
		convert, _ := cmd.Flags().GetBool("convert")
		output, _ := cmd.Flags().GetString("output")

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return errors.Wrap(err, "run 'nessus2csv config set-scanner' first")
		}

		client := nessusapi.NewClient(cfg.Scanner.URL, cfg.Scanner.AccessKey, cfg.Scanner.SecretKey, cfg.Scanner.InsecureSkipVerify)
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "List of reports...")
		list, err := client.ListScans(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprint(out, list.Tree())

		if folder == "" {
			folder, err = promptFolder(cmd.InOrStdin(), out)
			if err != nil {
				return err
			}
		}

		scans, err := list.Select(folder)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Exporting reports...")
		saved, err := downloadScans(cmd.Context(), client, cfg, scans, filepath.Join(dir, folder), out)
		if err != nil {
			return err
		}

		if convert && len(saved) > 0 {
			_, err = convertReports(saved, output, time.Now())
			return err
		}
		return nil
	},
}

func promptFolder(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, `Input folder name to export (type "all" to export all reports): `)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no folder name given")
	}
	folder := strings.TrimSpace(scanner.Text())
	if folder == "" {
		return "", errors.New("no folder name given")
	}
	return folder, nil
}

// downloadScans exports each scan, waits for it and writes it into dir. It returns the saved paths.
func downloadScans(ctx context.Context, client *nessusapi.Client, cfg *config.Config, scans []nessusapi.Scan, dir string, out io.Writer) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "could not create %s", dir)
	}

	saved := make([]string, 0, len(scans))
	for _, scan := range scans {
		fileID, err := client.Export(ctx, scan.ID, cfg.Export.Format)
		if err != nil {
			return saved, errors.Wrapf(err, "export of %q failed", scan.Name)
		}
		logger.Debugf("scan %d (%s) exporting as file %d", scan.ID, scan.Name, fileID)

		if err := client.WaitForExport(ctx, scan.ID, fileID, cfg.PollInterval()); err != nil {
			return saved, errors.Wrapf(err, "waiting for export of %q failed", scan.Name)
		}

		data, err := client.Download(ctx, scan.ID, fileID)
		if err != nil {
			return saved, errors.Wrapf(err, "download of %q failed", scan.Name)
		}

		name := nessusapi.FileName(scan.Name, fileID)
		fmt.Fprintf(out, "Saving scan results to %s\n", name)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return saved, errors.Wrapf(err, "could not write %s", path)
		}
		saved = append(saved, path)
	}
	return saved, nil
}

func init() {
	fetchCmd.Flags().StringP("folder", "f", "", `Scanner folder to export, or "all" (prompted when omitted)`)
	fetchCmd.Flags().StringP("dir", "d", ".", "Directory that receives the <folder> download directory")
	fetchCmd.Flags().Bool("convert", false, "Convert the downloaded reports into one CSV file")
	fetchCmd.Flags().StringP("output", "o", "", "Output CSV path when --convert is set")
	rootCmd.AddCommand(fetchCmd)
}
