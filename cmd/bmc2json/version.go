package main

import (
	"context"
	"fmt"

	"github.com/pish-pish/bmc2json/internal/version"

	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info := version.Resolve()
			fmt.Printf("bmc2json %s\n", info.Version)
			if info.Commit != "" {
				fmt.Printf("  commit: %s\n", info.Commit)
			}
			if info.BuildTime != "" {
				fmt.Printf("  built:  %s\n", info.BuildTime)
			}
			return nil
		},
	}
}
