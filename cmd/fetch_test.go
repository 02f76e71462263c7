package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/nessus2csv/pkg/config"
)

func fakeScanner(t *testing.T) *httptest.Server {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-ApiKeys") != "accessKey=ak; secretKey=sk" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid Credentials"}`))
			return
		}
		switch r.URL.Path {
		case "/scans":
			_, _ = w.Write([]byte(`{"folders":[{"id":2,"name":"My Scans"},{"id":3,"name":"Empty"}],
				"scans":[{"id":10,"uuid":"u-10","name":"Weekly","folder_id":2}]}`))
		case "/scans/10/export":
			_, _ = w.Write([]byte(`{"file":55}`))
		case "/scans/10/export/55/status":
			_, _ = w.Write([]byte(`{"status":"ready"}`))
		case "/scans/10/export/55/download":
			_, _ = w.Write([]byte(reportOne))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func configureScanner(t *testing.T, url, secret string) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NESSUS_URL", "")
	t.Setenv("NESSUS_ACCESS_KEY", "")
	t.Setenv("NESSUS_SECRET_KEY", "")

	cfg := config.Default()
	cfg.Scanner.URL = url
	cfg.Scanner.AccessKey = "ak"
	cfg.Scanner.SecretKey = secret
	cfg.Export.PollSeconds = 1
	require.NoError(t, config.SaveConfig(cfg))
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFetchDownloadsAndConverts(t *testing.T) {
	srv := fakeScanner(t)
	configureScanner(t, srv.URL, "sk")
	dir := t.TempDir()
	output := filepath.Join(dir, "combined.csv")

	out, err := runRoot(t, "My Scans\n", "fetch", "--dir", dir, "--convert", "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "\\My Scans - (1)\\")
	assert.Contains(t, out, "Saving scan results to nessus_Weekly_55.nessus")

	saved := filepath.Join(dir, "My Scans", "nessus_Weekly_55.nessus")
	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, reportOne, string(data))

	rows := readCSV(t, output)
	assert.Len(t, rows, 3)
}

func TestSelectFolderErrors(t *testing.T) {
	srv := fakeScanner(t)
	configureScanner(t, srv.URL, "sk")
	dir := t.TempDir()

	_, err := runRoot(t, "", "fetch", "--dir", dir, "--folder", "Empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not contain reports")

	_, err = runRoot(t, "", "fetch", "--dir", dir, "--folder", "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such folder")
}

func TestFetchBadCredentials(t *testing.T) {
	srv := fakeScanner(t)
	configureScanner(t, srv.URL, "wrong")

	_, err := runRoot(t, "", "fetch", "--dir", t.TempDir(), "--folder", "all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Credentials")
}

func TestPromptFolder(t *testing.T) {
	var out bytes.Buffer
	folder, err := promptFolder(strings.NewReader("  all \n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "all", folder)
	assert.Contains(t, out.String(), `type "all"`)

	_, err = promptFolder(strings.NewReader(""), &out)
	assert.Error(t, err)
}
