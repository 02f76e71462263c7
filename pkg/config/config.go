package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultExportFormat = "nessus"
	DefaultPollSeconds  = 5
)

type ScannerConfig struct {
	URL                string `yaml:"url"`
	AccessKey          string `yaml:"access_key"`
	SecretKey          string `yaml:"secret_key"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

type ExportConfig struct {
	Format      string `yaml:"format"`
	PollSeconds int    `yaml:"poll_seconds"`
}

type Config struct {
	Scanner ScannerConfig `yaml:"scanner"`
	Export  ExportConfig  `yaml:"export"`
}

func Default() *Config {
	return &Config{
		Scanner: ScannerConfig{InsecureSkipVerify: true},
		Export: ExportConfig{
			Format:      DefaultExportFormat,
			PollSeconds: DefaultPollSeconds,
		},
	}
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".nessus2csv")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// LoadConfig reads the config file, falling back to defaults when it does not
// exist. NESSUS_URL, NESSUS_ACCESS_KEY and NESSUS_SECRET_KEY fill unset values.
func LoadConfig() (*Config, error) {
	cfg, err := LoadStoredConfig()
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadStoredConfig is LoadConfig without the environment fallbacks, for callers
// that write the config back to disk.
func LoadStoredConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve config path")
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.Wrapf(err, "failed to read %s", path)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", path)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return errors.Wrap(err, "failed to resolve config path")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// 0600: the file holds API keys
	return os.WriteFile(path, data, 0600)
}

func (c *Config) applyEnv() {
	if c.Scanner.URL == "" {
		c.Scanner.URL = os.Getenv("NESSUS_URL")
	}
	if c.Scanner.AccessKey == "" {
		c.Scanner.AccessKey = os.Getenv("NESSUS_ACCESS_KEY")
	}
	if c.Scanner.SecretKey == "" {
		c.Scanner.SecretKey = os.Getenv("NESSUS_SECRET_KEY")
	}
}

func (c *Config) applyDefaults() {
	if c.Export.Format == "" {
		c.Export.Format = DefaultExportFormat
	}
	if c.Export.PollSeconds <= 0 {
		c.Export.PollSeconds = DefaultPollSeconds
	}
}

// PollInterval is the wait between export status checks.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Export.PollSeconds) * time.Second
}

// Validate reports whether the scanner section is complete enough to talk to the API.
func (c *Config) Validate() error {
	switch {
	case c.Scanner.URL == "":
		return errors.New("scanner url is not set")
	case c.Scanner.AccessKey == "" || c.Scanner.SecretKey == "":
		return errors.New("scanner access and secret keys are not set")
	}
	return nil
}
