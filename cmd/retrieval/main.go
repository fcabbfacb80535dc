package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	corpusFlag := &cli.StringFlag{
		Name:    "corpus",
		Aliases: []string{"c"},
		Usage:   "Path to the article dump (overrides corpus.path)",
	}
	app := &cli.App{
		Name:  "retrieval",
		Usage: "In-memory full-text retrieval over a Wikipedia article dump",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to YAML config file; built-in defaults when empty",
				EnvVars: []string{"RS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Build every index and store the cleaned article texts",
				Action: indexCommand,
				Flags:  []cli.Flag{corpusFlag},
			},
			{
				Name:      "search",
				Usage:     "Build the index and run one query",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					corpusFlag,
					&cli.StringFlag{
						Name:    "kind",
						Aliases: []string{"k"},
						Usage:   "Query kind (SingleWord, Boolean, Prefix, Exact, Fuzzy)",
						Value:   "SingleWord",
					},
					&cli.StringFlag{
						Name:    "variant",
						Aliases: []string{"v"},
						Usage:   "Boolean strategy or phrase algorithm",
					},
				},
			},
			{
				Name:   "crosscheck",
				Usage:  "Check that every boolean strategy agrees on random queries",
				Action: crosscheckCommand,
				Flags: []cli.Flag{
					corpusFlag,
					&cli.IntFlag{
						Name:  "queries",
						Usage: "Number of random queries",
						Value: 1000,
					},
					&cli.IntFlag{
						Name:  "depth",
						Usage: "Depth of each query tree",
						Value: 4,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed",
						Value: 1,
					},
				},
			},
			{
				Name:   "shell",
				Usage:  "Build the index once and answer queries read from stdin",
				Action: shellCommand,
				Flags:  []cli.Flag{corpusFlag},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
