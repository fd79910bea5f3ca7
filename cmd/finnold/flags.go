package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/ArthurEly/finn-old/internal/logger"
	"github.com/ArthurEly/finn-old/internal/threshold"
)

var (
	operatorPath string
	rtlDir       string
	logLevel     string
	logFormat    string
)

func commonOperatorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "operator",
			Aliases:     []string{"o"},
			Usage:       "path to operator description YAML",
			Required:    true,
			Destination: &operatorPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (auto, text, json)",
			Destination: &logFormat,
		},
	}
}

func rtlDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "rtl-dir",
		Usage:       "RTL template root directory",
		Destination: &rtlDir,
	}
}

// loadOperator reads, normalizes, and validates an operator description.
func loadOperator(path string) (*threshold.Attrs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read operator description: %w", err)
	}
	var a threshold.Attrs
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse operator description: %w", err)
	}
	a.Normalize()
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// newLogger builds the command logger from flags and config. With format
// "auto" (the default) it picks colored output on a terminal, plain text
// otherwise.
func newLogger(cfg Config) logger.Logger {
	levelName := logLevel
	if levelName == "" {
		levelName = cfg.LogLevel
	}
	level := logger.ParseLevel(levelName)

	format := logFormat
	if format == "" {
		format = cfg.LogFormat
	}
	switch format {
	case "json":
		return logger.JSON(os.Stderr, level)
	case "text":
		return logger.Text(os.Stderr, level)
	default:
		if stderrIsTTY() {
			return logger.Pretty(os.Stderr, level)
		}
		return logger.Text(os.Stderr, level)
	}
}
