// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration and record types shared across the
// pdfmerge stages. Every disk- or network-facing operation receives its
// configuration as an explicit value; there is no mutable module-level
// state.
package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that fetch remote
// source documents.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pdfmerge/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retry attempts on throttled or
	// temporarily unavailable responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// DiskConfig holds settings for the path-oriented merge variant.
// Per prd002-disk-merge R2.1-R2.4.
type DiskConfig struct {
	// BaseDir is the directory merge outputs resolve against.
	BaseDir string `json:"base_dir" yaml:"base_dir"`

	// AllowOutsideBase permits absolute output paths outside BaseDir.
	AllowOutsideBase bool `json:"allow_outside_base" yaml:"allow_outside_base"`
}

// StorageConfig holds settings for the S3-compatible object store that
// keeps merge results addressable by id.
type StorageConfig struct {
	// Endpoint is the host:port of the S3-compatible endpoint.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// AccessKey and SecretKey authenticate against the endpoint. They are
	// normally loaded from .secrets/ rather than the config file.
	AccessKey string `json:"access_key,omitempty" yaml:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`

	// Bucket is the bucket merge results are stored in.
	Bucket string `json:"bucket" yaml:"bucket"`

	// UseSSL enables TLS towards the endpoint.
	UseSSL bool `json:"use_ssl" yaml:"use_ssl"`
}

// HistoryConfig holds settings for the merge-history ledger.
type HistoryConfig struct {
	// Dir is the directory holding the SQLite ledger (contains merges.db).
	Dir string `json:"dir" yaml:"dir"`
}

// ServeConfig holds settings for the HTTP surface.
type ServeConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadBytes caps the total size of a multipart merge request.
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// Config groups all stage configurations.
type Config struct {
	HTTP    HTTPConfig    `json:"http" yaml:"http"`
	Disk    DiskConfig    `json:"disk" yaml:"disk"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	History HistoryConfig `json:"history" yaml:"history"`
	Serve   ServeConfig   `json:"serve" yaml:"serve"`
}
