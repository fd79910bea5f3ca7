package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the finnold configuration file
// (~/.config/finnold/config.yaml). CLI flags always win over config values.
type Config struct {
	// RTLDir is the template root directory.
	RTLDir string `yaml:"rtl_dir"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ServerAddress string `yaml:"server_address"`

	// Default stream clock frequencies for the integrate command.
	SAxisFreqHz int64 `yaml:"s_axis_freq_hz"`
	MAxisFreqHz int64 `yaml:"m_axis_freq_hz"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "finnold", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't
// exist or cannot be parsed; config is advisory, flags are authoritative.
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

// defaultRTLDir is the in-repo template root, used when neither flag, env,
// nor config names one.
const defaultRTLDir = "rtllib/thresholding/hdl"

// resolveRTLDir picks the template root: --rtl-dir flag, then the
// FINNOLD_RTL_DIR environment variable, then the config file, then the
// in-repo default.
func resolveRTLDir(c *cli.Command, cfg Config, flagValue string) string {
	if c.IsSet("rtl-dir") {
		return flagValue
	}
	if env := os.Getenv("FINNOLD_RTL_DIR"); env != "" {
		return env
	}
	if cfg.RTLDir != "" {
		return cfg.RTLDir
	}
	return defaultRTLDir
}

func resolveFreq(c *cli.Command, flagName string, flagValue, cfgValue, fallback int64) int64 {
	if c.IsSet(flagName) {
		return flagValue
	}
	if cfgValue != 0 {
		return cfgValue
	}
	return fallback
}
