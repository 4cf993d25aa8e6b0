// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/bradhe/stopwatch"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfmerge/internal/disk"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch [manifest]",
	Short: "Run merge jobs from a YAML manifest",
	Long: `Batch reads a YAML manifest of merge jobs and runs each one
independently: a failed job is reported and the batch continues. Each job
names its sources, its output path, and a mode — strict (default, abort
the job on the first bad source) or best-effort (skip bad sources and
merge the rest).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Bool("init", false, "write a manifest skeleton instead of running")
	batchCmd.Flags().String("base-dir", ".", "base directory for output paths")
	batchCmd.Flags().Bool("allow-outside-base", false, "permit output paths outside the base directory")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("manifest path required")
	}
	manifestPath := args[0]

	if initFlag, _ := cmd.Flags().GetBool("init"); initFlag {
		skeleton := &disk.Manifest{Jobs: []disk.Job{
			{Output: "merged/report.pdf", Sources: []string{"a.pdf", "b.pdf"}},
			{Output: "merged/scans.pdf", Sources: []string{"scans/s1.pdf", "scans/s2.pdf"}, Mode: types.ModeBestEffort},
		}}
		if err := disk.WriteManifest(manifestPath, skeleton); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "wrote manifest skeleton to %s\n", manifestPath)
		return nil
	}

	m, err := disk.ReadManifest(manifestPath)
	if err != nil {
		return err
	}
	cfg := diskConfig(cmd)

	watch := stopwatch.Start()
	var okJobs, failedJobs int

	for i, job := range m.Jobs {
		fmt.Fprintf(os.Stdout, "job %d/%d: %s (%s)\n", i+1, len(m.Jobs), job.Output, job.ModeOrDefault())
		rec := types.MergeRecord{
			ID:      uuid.NewString(),
			Mode:    job.ModeOrDefault(),
			Sources: len(job.Sources),
		}

		switch job.ModeOrDefault() {
		case types.ModeBestEffort:
			result, resolved, err := disk.MergeBestEffort(job.Sources, job.Output, cfg, os.Stdout)
			if err != nil {
				fmt.Fprintf(os.Stdout, "job failed: %v\n", err)
				failedJobs++
				rec.Status = types.StatusFailed
				rec.Error = err.Error()
				break
			}
			okJobs++
			rec.Pages = result.Pages
			rec.Output = resolved
			rec.Status = types.StatusOK
		default:
			resolved, pages, err := disk.MergeStrict(job.Sources, job.Output, cfg, os.Stdout)
			if err != nil {
				fmt.Fprintf(os.Stdout, "job failed: %v\n", err)
				failedJobs++
				rec.Status = types.StatusFailed
				rec.Error = err.Error()
				break
			}
			okJobs++
			rec.Pages = pages
			rec.Output = resolved
			rec.Status = types.StatusOK
		}

		recordMerge(rec)
	}

	watch.Stop()
	fmt.Fprintf(os.Stdout, "\nBatch: %d job(s) succeeded, %d failed in %v ms\n",
		okJobs, failedJobs, watch.Milliseconds())

	if failedJobs > 0 {
		return fmt.Errorf("%d job(s) failed", failedJobs)
	}
	return nil
}
