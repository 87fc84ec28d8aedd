package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/linzero/casreg/checker"
)

func renderChain(w io.Writer, chain []checker.ChainEntry[string, string]) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"write_id", "value", "lts", "observed_at"})
	for _, entry := range chain {
		table.Append([]string{
			entry.WriteID,
			entry.Value,
			fmt.Sprintf("%d", entry.LTS),
			fmt.Sprintf("%d", entry.ObservedAt),
		})
	}
	table.Render()
}
