// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage keeps merge results in an S3-compatible object store,
// addressable by id for later download.
// Implements: prd004-storage (R1-R2);
//
//	docs/ARCHITECTURE § Result Storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pdiddy/pdfmerge/pkg/types"
)

const contentType = "application/pdf"

// Client wraps a minio client bound to one bucket.
type Client struct {
	mc     *minio.Client
	bucket string
}

// New builds a storage client from explicit configuration. It does not
// touch the network; bucket existence is checked by EnsureBucket.
func New(cfg types.StorageConfig) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("storage endpoint not configured")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket not configured")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return &Client{mc: mc, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the configured bucket if it does not exist.
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", c.bucket, err)
	}
	if exists {
		return nil
	}
	if err := c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("creating bucket %s: %w", c.bucket, err)
	}
	return nil
}

// Upload stores a merge result under id.
func (c *Client) Upload(ctx context.Context, id string, data []byte) error {
	_, err := c.mc.PutObject(ctx, c.bucket, id, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("uploading object %s: %w", id, err)
	}
	return nil
}

// Download retrieves a stored merge result by id.
func (c *Client) Download(ctx context.Context, id string) ([]byte, error) {
	obj, err := c.mc.GetObject(ctx, c.bucket, id, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching object %s: %w", id, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("reading object %s: %w", id, err)
	}
	return data, nil
}
