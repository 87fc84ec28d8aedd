package main

import (
	"bufio"
	"encoding/json"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/linzero/casreg/history"
)

var commandGen = &cli.Command{
	Name:  "gen",
	Usage: "generate a synthetic history for exercising the checker",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "clients", Value: 3, Usage: "number of simulated concurrent clients"},
		&cli.IntFlag{Name: "ops", Value: 20, Usage: "number of operations to simulate"},
		&cli.Float64Flag{Name: "fault-rate", Value: 0, Usage: "fraction of writes to corrupt with a never-proposed prev_write_id"},
		&cli.Int64Flag{Name: "seed", Value: 1, Usage: "random seed, for reproducible fixtures"},
		&cli.StringFlag{Name: "out", Usage: "output file (defaults to stdout)"},
	},
	Action: runGen,
}

func runGen(ctx *cli.Context) error {
	out := ctx.App.Writer
	if path := ctx.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return cli.Exit(err, 2)
		}
		defer f.Close()
		out = f
	}

	events := generateHistory(genOpts{
		clients:   ctx.Int("clients"),
		ops:       ctx.Int("ops"),
		faultRate: ctx.Float64("fault-rate"),
		seed:      ctx.Int64("seed"),
	})

	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	for _, e := range events {
		if err := enc.Encode(fromEvent(e)); err != nil {
			return cli.Exit(err, 2)
		}
	}
	return w.Flush()
}

type genOpts struct {
	clients   int
	ops       int
	faultRate float64
	seed      int64
}

// generateHistory simulates `clients` clients each issuing a random read or
// CAS write against an in-memory reference register (see register.go),
// driven by a shared logical clock. A write's prev_write_id names whatever
// the issuing client currently believes is the latest accepted write, which
// matches the register's actual current write-id unless fault-rate
// deliberately corrupts it first — in which case prev names a write-id
// that was never proposed and the register rejects the write. The ok for
// such a write is still emitted, so the checker reports it as an unknown
// write; the generator does not produce branching-chain or stale-read
// histories. Write-ids and values are drawn from the seeded rng, so the
// same seed always yields the same history.
func generateHistory(opts genOpts) []history.Event[string, string] {
	rng := rand.New(rand.NewSource(opts.seed))
	if opts.clients < 1 {
		opts.clients = 1
	}
	newID := func() string {
		id, _ := uuid.NewRandomFromReader(rng)
		return id.String()
	}

	var events []history.Event[string, string]
	var ts int64
	reg := newRegister("w0", "v0")
	believedLatest := "w0"

	nextTS := func() int64 {
		ts++
		return ts
	}

	for i := 0; i < opts.ops; i++ {
		client := rng.Intn(opts.clients)
		if rng.Intn(2) == 0 {
			prev := believedLatest
			if opts.faultRate > 0 && rng.Float64() < opts.faultRate {
				prev = newID() // names a write-id that was never proposed
			}
			wid := newID()
			value := newID()[:8]
			events = append(events, history.Event[string, string]{
				Time: nextTS(), Process: client, Type: history.Invoke, F: history.Write,
				WriteID: wid, PrevWriteID: prev, Value: value,
			})
			events = append(events, history.Event[string, string]{
				Time: nextTS(), Process: client, Type: history.Ok, F: history.Write, WriteID: wid,
			})
			if actualWID, _, applied := reg.compareAndSet(prev, wid, value); applied {
				believedLatest = actualWID
			}
		} else {
			wid, value := reg.read()
			events = append(events, history.Event[string, string]{
				Time: nextTS(), Process: client, Type: history.Invoke, F: history.Read,
			})
			events = append(events, history.Event[string, string]{
				Time: nextTS(), Process: client, Type: history.Ok, F: history.Read,
				WriteID: wid, Value: value,
			})
			believedLatest = wid
		}
	}
	return events
}
