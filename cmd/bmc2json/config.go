package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the bmc2json configuration file
// (~/.config/bmc2json/config.yaml). Numeric fields are pointers so that
// "not set" can be told apart from zero values.
type Config struct {
	LibraryDir string `yaml:"library_dir"`

	// Export defaults
	GroupSize    *int64 `yaml:"group_size"`
	OutputFormat string `yaml:"output_format"`

	// Server
	ServerAddress string   `yaml:"server_address"`
	RateLimit     *float64 `yaml:"rate_limit"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bmc2json", "config.yaml")
}

// applyExportConfig applies config file defaults to export command
// variables when the corresponding CLI flag was not explicitly set. The
// library directory is resolved separately, in resolveLibraryDir.
func applyExportConfig(c *cli.Command, cfg Config, group *int64, format *string) {
	if cfg.GroupSize != nil && !c.IsSet("group") && !c.IsSet("g") {
		*group = *cfg.GroupSize
	}
	if cfg.OutputFormat != "" && !c.IsSet("format") {
		*format = cfg.OutputFormat
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, rps *float64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.RateLimit != nil && !c.IsSet("rate-limit") {
		*rps = *cfg.RateLimit
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
