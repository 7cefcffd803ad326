package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pish-pish/bmc2json/internal/palstore"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List the palettes in the library directory",
		Flags: []cli.Flag{
			libraryFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			log := newLogger(cfg)

			dir, err := resolveLibraryDir(cfg)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			store, err := palstore.New(dir)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			entries, err := store.List()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: list %s: %v", dir, err), 1)
			}
			if len(entries) == 0 {
				log.Info("no palettes found", "dir", dir)
				return nil
			}

			fmt.Printf("Palettes in %s:\n", dir)
			for _, e := range entries {
				if e.Entries < 0 {
					fmt.Printf("  %-32s %8s  (unreadable)\n", e.Name, formatSize(e.Size))
					continue
				}
				fmt.Printf("  %-32s %8s  %d colors\n", e.Name, formatSize(e.Size), e.Entries)
			}
			fmt.Printf("%d palette(s) found\n", len(entries))
			return nil
		},
	}
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
