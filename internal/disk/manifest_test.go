// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package disk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/pdfmerge/pkg/types"
)

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.yaml")

	m := &Manifest{Jobs: []Job{
		{Output: "merged/report.pdf", Sources: []string{"a.pdf", "b.pdf"}},
		{Output: "merged/scans.pdf", Sources: []string{"s1.pdf"}, Mode: types.ModeBestEffort},
	}}
	if err := WriteManifest(path, m); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(got.Jobs))
	}
	if got.Jobs[0].ModeOrDefault() != types.ModeStrict {
		t.Errorf("job 1 mode = %q, want strict default", got.Jobs[0].ModeOrDefault())
	}
	if got.Jobs[1].ModeOrDefault() != types.ModeBestEffort {
		t.Errorf("job 2 mode = %q, want best-effort", got.Jobs[1].ModeOrDefault())
	}
	if len(got.Jobs[0].Sources) != 2 {
		t.Errorf("job 1 sources = %v, want 2 entries", got.Jobs[0].Sources)
	}
}

func TestReadManifest_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"missing output", "jobs:\n  - sources: [a.pdf]\n", "output path required"},
		{"unknown mode", "jobs:\n  - output: m.pdf\n    mode: eventually\n", "unknown mode"},
		{"not yaml", "{{{", "parsing manifest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "-")+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := ReadManifest(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}

	if _, err := ReadManifest(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("missing manifest file should be an error")
	}
}
