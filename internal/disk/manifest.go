// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package disk

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfmerge/pkg/types"
)

// Manifest is the on-disk representation of a batch of merge jobs. Each
// job runs independently: a failed job never stops the batch.
// Implements: prd002-disk-merge R4.1-R4.3.
type Manifest struct {
	Jobs []Job `yaml:"jobs"`
}

// Job describes one merge: its sources, destination, and failure policy.
type Job struct {
	// Output is the destination path, resolved against the base directory.
	Output string `yaml:"output"`

	// Sources lists the input files in merge order.
	Sources []string `yaml:"sources"`

	// Mode is "strict" (default) or "best-effort".
	Mode string `yaml:"mode,omitempty"`
}

// ModeOrDefault returns the job's failure policy, defaulting to strict.
func (j Job) ModeOrDefault() string {
	if j.Mode == "" {
		return types.ModeStrict
	}
	return j.Mode
}

// ReadManifest loads and validates a batch manifest from a YAML file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	for i, job := range m.Jobs {
		if job.Output == "" {
			return nil, fmt.Errorf("manifest job %d: output path required", i+1)
		}
		switch job.ModeOrDefault() {
		case types.ModeStrict, types.ModeBestEffort:
		default:
			return nil, fmt.Errorf("manifest job %d: unknown mode %q", i+1, job.Mode)
		}
	}
	return &m, nil
}

// WriteManifest saves a manifest skeleton, used by `pdfmerge batch --init`.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
