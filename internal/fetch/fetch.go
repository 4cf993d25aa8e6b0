// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads remote source documents into byte buffers ready
// for merging.
// Implements: prd003-fetch (R1-R3);
//
//	docs/ARCHITECTURE § Source Fetching.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/pdfmerge/internal/httputil"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

// ErrNotPDF is returned when a fetched body does not carry a PDF
// signature. Document hosts commonly answer paywalled or moved documents
// with an HTML page and status 200.
var ErrNotPDF = errors.New("response body is not a PDF")

var pdfSignature = []byte("%PDF-")

// IsRemote reports whether a merge source names a URL rather than a file.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetch downloads url and returns the body. It sets User-Agent and Accept
// headers, retries throttled responses, and rejects non-200 statuses and
// non-PDF bodies. The signature check here is a fetch-layer policy only;
// the merge core delegates all validation to the PDF library.
func Fetch(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if !bytes.HasPrefix(data, pdfSignature) {
		return nil, fmt.Errorf("%w: %s", ErrNotPDF, url)
	}
	return data, nil
}
