package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/pish-pish/bmc2json/internal/api"
	"github.com/pish-pish/bmc2json/internal/palstore"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		rateLimit   float64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the palette library and conversion API over HTTP",
		Flags: []cli.Flag{
			libraryFlag(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8480",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Float64Flag{
				Name:        "rate-limit",
				Usage:       "conversion requests per second (0 disables the limit)",
				Value:       20,
				Destination: &rateLimit,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			log := newLogger(cfg)
			applyServeConfig(cmd, cfg, &addr, &rateLimit)

			var store *palstore.Store
			if dir, err := resolveLibraryDir(cfg); err == nil {
				store, err = palstore.New(dir)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				log.Info("serving palette library", "dir", dir)
			} else {
				log.Warn("no palette library configured; library routes will report not found")
			}

			server := api.NewServer(store, rateLimit)
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
