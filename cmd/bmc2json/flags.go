package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pish-pish/bmc2json/internal/logger"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "pretty"
)

var (
	inputPath  string
	outputPath string
	libraryDir string
	logLevel   string
	logFormat  string
	debug      bool
)

func inputFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "input",
		Aliases:     []string{"i"},
		Usage:       "path to the input file",
		Required:    required,
		Destination: &inputPath,
	}
}

func outputFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "output",
		Aliases:     []string{"o"},
		Usage:       usage,
		Destination: &outputPath,
	}
}

func libraryFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "library",
		Aliases:     []string{"l"},
		Usage:       "path to the palette library directory",
		Destination: &libraryDir,
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       defaultLogLevel,
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       defaultLogFormat,
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

// newLogger builds the command logger from the logging flags, falling
// back to config file values for flags left on their defaults.
func newLogger(cfg Config) logger.Logger {
	level := logLevel
	if level == defaultLogLevel && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	format := logFormat
	if format == defaultLogFormat && cfg.LogFormat != "" {
		format = cfg.LogFormat
	}

	lvl := logger.ParseLevel(level)
	if debug {
		lvl = slog.LevelDebug
	}
	switch format {
	case "json":
		return logger.JSON(os.Stderr, lvl)
	case "text":
		return logger.Text(os.Stderr, lvl)
	default:
		return logger.Pretty(os.Stderr, lvl)
	}
}
