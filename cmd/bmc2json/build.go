package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/pish-pish/bmc2json/internal/riffpal"
	"github.com/pish-pish/bmc2json/pkg/bmc"
)

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build a BMC container from a document or RIFF palette",
		Flags: []cli.Flag{
			inputFlag(true),
			outputFlag("output path (defaults to the input name with a .bmc extension)"),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			log := newLogger(cfg)

			var (
				cont *bmc.Container
				err  error
			)
			switch strings.ToLower(filepath.Ext(inputPath)) {
			case riffpal.Extension:
				cont, err = readPAL(inputPath)
			default:
				cont, err = bmc.ImportFile(inputPath)
			}
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %s: %v", inputPath, err), 1)
			}

			outPath, _, err := resolveOutputPath(inputPath, outputPath, bmc.Extension)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := cont.WriteFile(outPath); err != nil {
				return cli.Exit(fmt.Sprintf("error: write %s: %v", outPath, err), 1)
			}

			log.Info("build complete",
				"input", inputPath,
				"output", outPath,
				"entries", len(cont.Table.Colors),
			)
			return nil
		},
	}
}
