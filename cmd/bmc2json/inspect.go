package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/pish-pish/bmc2json/pkg/bmc"
)

func inspectCmd() *cli.Command {
	var (
		showColors bool
		limit      int64
	)
	return &cli.Command{
		Name:  "inspect",
		Usage: "Print the section layout of a BMC container",
		Flags: []cli.Flag{
			inputFlag(true),
			&cli.BoolFlag{
				Name:        "colors",
				Usage:       "list the color entries",
				Destination: &showColors,
			},
			&cli.Int64Flag{
				Name:        "limit",
				Usage:       "number of colors to list (-1 for all)",
				Value:       16,
				Destination: &limit,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info, err := os.Stat(inputPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if info.IsDir() || !strings.EqualFold(filepath.Ext(inputPath), bmc.Extension) {
				return cli.Exit(fmt.Sprintf("error: inspect only supports %s files", bmc.Extension), 1)
			}

			cont, err := bmc.Open(inputPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %s: %v", inputPath, err), 1)
			}

			n := len(cont.Table.Colors)
			containerSize, tableSize := bmc.SectionSizes(n)

			fmt.Printf("File: %s\n", inputPath)
			fmt.Printf("BMC container | sections=%d | entries=%d | %d bytes\n",
				bmc.CurrentSectionCount, n, info.Size())

			fmt.Println()
			fmt.Println("Container:")
			printRow("signature", cont.Header.Signature)
			printSizeRow(cont.Header.Size, containerSize)

			fmt.Println()
			fmt.Println("Color table:")
			printRow("signature", cont.Table.Header.Signature)
			printSizeRow(cont.Table.Header.Size, tableSize)
			printRow("entries", n)

			if showColors {
				fmt.Println()
				fmt.Println("Colors:")
				shown := n
				if limit >= 0 && int64(shown) > limit {
					shown = int(limit)
				}
				for i := 0; i < shown; i++ {
					c := cont.Table.Colors[i]
					fmt.Printf("  [%3d] %s  rgba(%3d, %3d, %3d, %3d)\n", i, c, c.R, c.G, c.B, c.A)
				}
				if shown < n {
					fmt.Printf("  ... (%d more)\n", n-shown)
				}
			}
			return nil
		},
	}
}

func printRow(label string, value any) {
	fmt.Printf("  %-16s %v\n", label+":", value)
}

// printSizeRow flags stored section sizes that disagree with what the entry
// count implies. Decoding never checks them, so stale sizes surface here.
func printSizeRow(declared, computed uint32) {
	if declared == computed {
		printRow("size", declared)
		return
	}
	printRow("size", fmt.Sprintf("%d (expected %d)", declared, computed))
}
