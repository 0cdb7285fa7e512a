package main

import (
	"os"

	"github.com/pyropy/lru/core/config"
	"github.com/pyropy/lru/lib/logger"
	"github.com/urfave/cli/v2"
)

var log, _ = logger.New("lru-cli")

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatalw("startup", "ERROR", err)
	}

	if err := newApp(cfg).Run(os.Args); err != nil {
		log.Fatalw("run", "ERROR", err)
	}
}

func newApp(cfg *config.Config) *cli.App {
	return &cli.App{
		Name:  "lru",
		Usage: "Bounded LRU cache playground",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: cfg.Log.Level,
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx *cli.Context) error {
			return logger.SetLevel(ctx.String("log-level"))
		},
		Commands: []*cli.Command{
			demoCmd,
			replayCmd(cfg),
			storeCmd(cfg),
			fillCmd(cfg),
		},
	}
}
