// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfmerge/internal/fetch"
	"github.com/pdiddy/pdfmerge/internal/merge"
)

var infoCmd = &cobra.Command{
	Use:   "info [sources...]",
	Short: "Print the page count of each source",
	Long: `Info loads each source (file path or URL) and prints its page count,
useful for checking inputs before a merge.`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	client := httpClient()
	hcfg := httpConfig()

	var failed int
	for _, arg := range args {
		var data []byte
		var err error
		if fetch.IsRemote(arg) {
			data, err = fetch.Fetch(cmd.Context(), client, arg, hcfg)
		} else {
			data, err = os.ReadFile(arg)
		}
		if err != nil {
			fmt.Fprintf(os.Stdout, "failed:  %s (%v)\n", arg, err)
			failed++
			continue
		}

		pages, err := merge.PageCount(data)
		if err != nil {
			fmt.Fprintf(os.Stdout, "failed:  %s (%v)\n", arg, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "%s: %d page(s)\n", arg, pages)
	}

	if failed > 0 {
		return fmt.Errorf("%d source(s) failed", failed)
	}
	return nil
}
