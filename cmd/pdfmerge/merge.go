// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfmerge/internal/disk"
	"github.com/pdiddy/pdfmerge/internal/fetch"
	"github.com/pdiddy/pdfmerge/internal/merge"
	"github.com/pdiddy/pdfmerge/internal/storage"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [sources...]",
	Short: "Merge PDF sources into a single document (strict mode)",
	Long: `Merge combines the given sources, in order, into one PDF. Sources are
local file paths or http(s) URLs. The first source that fails to load
aborts the whole merge; nothing is written.

The output lands under the configured base directory (--output) or in the
object store (--store), which prints the stored object id.`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "", "output path, resolved against the base directory")
	mergeCmd.Flags().Bool("store", false, "upload the result to the object store instead of writing a file")
	mergeCmd.Flags().String("base-dir", ".", "base directory for output paths")
	mergeCmd.Flags().Bool("allow-outside-base", false, "permit output paths outside the base directory")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	store, _ := cmd.Flags().GetBool("store")
	if !store && output == "" {
		return fmt.Errorf("an --output path or --store is required")
	}

	ctx := cmd.Context()
	id := uuid.NewString()

	sources, err := loadSources(cmd, args)
	if err != nil {
		recordMerge(types.MergeRecord{
			ID: id, Mode: types.ModeStrict, Sources: len(args),
			Status: types.StatusFailed, Error: err.Error(),
		})
		return err
	}

	doc, err := merge.Accumulate(merge.PDFAppender{}, sources)
	if err != nil {
		recordMerge(types.MergeRecord{
			ID: id, Mode: types.ModeStrict, Sources: len(args),
			Status: types.StatusFailed, Error: err.Error(),
		})
		return err
	}

	out, err := doc.Save()
	if err != nil {
		err = fmt.Errorf("%w: %v", merge.ErrMerge, err)
		recordMerge(types.MergeRecord{
			ID: id, Mode: types.ModeStrict, Sources: len(args),
			Status: types.StatusFailed, Error: err.Error(),
		})
		return err
	}

	var dest string
	if store {
		client, err := storage.New(storageConfig())
		if err != nil {
			return err
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return err
		}
		dest = id + ".pdf"
		if err := client.Upload(ctx, dest, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "stored %d page(s) as %s\n", doc.PageCount(), dest)
	} else {
		resolved, err := disk.WriteFile(output, out, diskConfig(cmd))
		if err != nil {
			return err
		}
		dest = resolved
		fmt.Fprintf(os.Stdout, "merged %d source(s), %d page(s) -> %s\n", len(args), doc.PageCount(), resolved)
	}

	recordMerge(types.MergeRecord{
		ID: id, Mode: types.ModeStrict, Sources: len(args),
		Pages: doc.PageCount(), Output: dest, Status: types.StatusOK,
	})
	return nil
}

// loadSources materializes each source argument as a byte buffer, fetching
// remote URLs and reading local paths. The first failure aborts, wrapped
// as a merge failure.
func loadSources(cmd *cobra.Command, args []string) ([][]byte, error) {
	client := httpClient()
	hcfg := httpConfig()

	sources := make([][]byte, len(args))
	for i, arg := range args {
		if fetch.IsRemote(arg) {
			data, err := fetch.Fetch(cmd.Context(), client, arg, hcfg)
			if err != nil {
				return nil, fmt.Errorf("%w: fetching %s: %v", merge.ErrMerge, arg, err)
			}
			sources[i] = data
			continue
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", merge.ErrMerge, arg, err)
		}
		sources[i] = data
	}
	return sources, nil
}
