// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfmerge/internal/history"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded merge operations",
	Long: `History lists merge operations from the local SQLite ledger, newest
first. Every merge, batch job, and serve request is recorded with its
mode, source count, page count, destination, and outcome.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of records to list")
	historyCmd.Flags().Bool("json", false, "output records as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No merges recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-11s  %7s  %5s  %-6s  %s\n",
		"ID", "Mode", "Sources", "Pages", "Status", "Output")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range records {
		out := r.Output
		if r.Status == types.StatusFailed {
			out = r.Error
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-11s  %7d  %5d  %-6s  %s\n",
			r.ID, r.Mode, r.Sources, r.Pages, r.Status, out)
	}
	return nil
}

// recordMerge appends one operation to the ledger. Recording is
// best-effort: a ledger problem warns on stderr and never fails the merge
// that produced the record.
func recordMerge(rec types.MergeRecord) {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open history ledger: %v\n", err)
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Record(ctx, rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record merge: %v\n", err)
	}
}
