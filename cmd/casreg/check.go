package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/linzero/casreg"
	"github.com/linzero/casreg/config"
)

var commandCheck = &cli.Command{
	Name:      "check",
	Usage:     "check a recorded history for linearizability",
	ArgsUsage: "<history-file>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "path to a casreg.toml config file"},
		&cli.IntFlag{Name: "concurrency", Usage: "max number of active client threads (overrides config)"},
		&cli.StringFlag{Name: "genesis-id", Usage: "genesis write-id (overrides config)"},
		&cli.StringFlag{Name: "genesis-value", Usage: "genesis value (overrides config)"},
		&cli.BoolFlag{Name: "explain", Usage: "render the accepted write chain as a table"},
	},
	Action: runCheck,
}

func runCheck(ctx *cli.Context) error {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cli.Exit(err, 2)
		}
		cfg = loaded
	}
	if ctx.IsSet("concurrency") {
		cfg.Concurrency = ctx.Int("concurrency")
	}
	if ctx.IsSet("genesis-id") {
		cfg.Genesis.WriteID = ctx.String("genesis-id")
	}
	if ctx.IsSet("genesis-value") {
		cfg.Genesis.Value = ctx.String("genesis-value")
	}

	historyPath := ctx.Args().First()
	if historyPath == "" {
		return cli.Exit("usage: casreg check [flags] <history-file>", 2)
	}
	f, err := os.Open(historyPath)
	if err != nil {
		return cli.Exit(err, 2)
	}
	defer f.Close()

	events, err := decodeHistory(f)
	if err != nil {
		return cli.Exit(err, 2)
	}

	seed := casreg.Seed[string, string]{WriteID: cfg.Genesis.WriteID, Value: cfg.Genesis.Value}
	result, state, err := casreg.CheckVerbose(events, cfg.Concurrency, seed)
	if err != nil {
		return cli.Exit(err, 2)
	}

	if result.Valid {
		fmt.Fprintln(ctx.App.Writer, "VALID: history is linearizable")
	} else {
		fmt.Fprintf(ctx.App.Writer, "INVALID: %s\n", result.Details)
	}

	if ctx.Bool("explain") && state != nil {
		renderChain(ctx.App.Writer, state.Chain())
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}
