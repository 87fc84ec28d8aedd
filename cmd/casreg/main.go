// Command casreg checks a recorded history of read/write/CAS operations on
// a single register for linearizability, and can generate synthetic
// histories for exercising that check.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	app := &cli.App{
		Name:  "casreg",
		Usage: "check a CAS-register history for linearizability",
		Commands: []*cli.Command{
			commandCheck,
			commandGen,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a top-level app error to the process exit code. Only
// reached for errors that escaped an Action without already calling
// cli.Exit directly (e.g. flag-parsing failures), so it conservatively
// reports a usage/harness failure.
func exitCodeFor(err error) int {
	if ec, ok := err.(cli.ExitCoder); ok {
		return ec.ExitCode()
	}
	return 2
}
