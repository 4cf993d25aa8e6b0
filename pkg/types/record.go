// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Merge operation modes recorded in the history ledger.
const (
	ModeStrict     = "strict"
	ModeBestEffort = "best-effort"
)

// Merge outcome statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// MergeRecord describes one completed or failed merge operation.
type MergeRecord struct {
	// ID identifies the operation (a UUID).
	ID string `json:"id" yaml:"id"`

	// Mode is ModeStrict or ModeBestEffort.
	Mode string `json:"mode" yaml:"mode"`

	// Sources is the number of source documents supplied.
	Sources int `json:"sources" yaml:"sources"`

	// Pages is the number of content pages in the output (0 on failure).
	Pages int `json:"pages" yaml:"pages"`

	// Output is the destination: a file path or a stored object id.
	Output string `json:"output" yaml:"output"`

	// Status is StatusOK or StatusFailed.
	Status string `json:"status" yaml:"status"`

	// Error carries the failure cause when Status is StatusFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// CreatedAt is when the operation finished.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
