package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/opus-finance/opus-api/libs/go/types/api/responses"
	"github.com/spf13/cobra"
)

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printLocks(w io.Writer, locks []responses.LockResponse) error {
	if len(locks) == 0 {
		fmt.Fprintln(w, "No locks")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tAMOUNT\tSTART\tEND\tSOURCE")
	for _, l := range locks {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", l.ID, l.Amount, l.StartTime, l.EndTime, l.Source)
	}
	return tw.Flush()
}
