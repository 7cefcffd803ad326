package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/pish-pish/bmc2json/internal/riffpal"
	"github.com/pish-pish/bmc2json/pkg/bmc"
)

func exportCmd() *cli.Command {
	var (
		group  int64
		format string
	)
	return &cli.Command{
		Name:  "export",
		Usage: "Decode a BMC container into an editable document",
		Flags: []cli.Flag{
			inputFlag(false),
			outputFlag("output path (defaults to the input name with the format extension)"),
			libraryFlag(),
			&cli.Int64Flag{
				Name:        "group",
				Aliases:     []string{"g"},
				Usage:       "colors per group in the document (0 or 1 keeps the list flat)",
				Destination: &group,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (json, pal)",
				Value:       "json",
				Destination: &format,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			log := newLogger(cfg)
			applyExportConfig(cmd, cfg, &group, &format)

			format = strings.ToLower(strings.TrimSpace(format))
			if !cmd.IsSet("format") {
				// An explicit output extension picks the format.
				switch strings.ToLower(filepath.Ext(strings.TrimSpace(outputPath))) {
				case riffpal.Extension:
					format = "pal"
				case ".json":
					format = "json"
				}
			}
			if format != "json" && format != "pal" {
				return cli.Exit(fmt.Sprintf("error: unsupported output format %q", format), 1)
			}

			inPath, err := resolveInputPalette(inputPath, cfg, os.Stdin, os.Stderr)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			cont, err := bmc.Open(inPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %s: %v", inPath, err), 1)
			}

			outPath, _, err := resolveOutputPath(inPath, outputPath, "."+format)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			switch format {
			case "pal":
				err = writePAL(outPath, cont.Table.Colors)
			default:
				err = cont.ExportFile(outPath, int(group))
			}
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: write %s: %v", outPath, err), 1)
			}

			log.Info("export complete",
				"input", inPath,
				"output", outPath,
				"entries", len(cont.Table.Colors),
				"format", format,
			)
			return nil
		},
	}
}
