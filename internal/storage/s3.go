// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage mirrors uploaded media to S3-compatible object storage.
// The local public/images directory stays the source of truth; the bucket
// holds a copy that a CDN can serve. It wraps the AWS SDK v2 and is
// configured for path-style access (required by CEPH/Hetzner/MinIO).
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Client wraps an S3 client bound to one public bucket.
type Client struct {
	s3        *s3.Client
	bucket    string
	prefix    string
	endpoint  string
	publicURL string // optional CDN/direct URL for mirrored files
}

// New creates an S3 storage client with path-style addressing. Returns
// (nil, nil) if endpoint, bucket, or credentials are empty, allowing the app
// to start without a mirror.
func New(endpoint, region, accessKey, secretKey, bucket, prefix, publicURL string) (*Client, error) {
	if endpoint == "" || bucket == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}
	if region == "" {
		return nil, fmt.Errorf("storage: region is required when S3_ENDPOINT is set")
	}

	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		bucket:    bucket,
		prefix:    strings.Trim(prefix, "/"),
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Key returns the object key for an image file name.
func (c *Client) Key(name string) string {
	if c.prefix == "" {
		return name
	}
	return path.Join(c.prefix, name)
}

// Upload stores an image under its file name with public-read ACL.
func (c *Client) Upload(ctx context.Context, name, contentType string, body io.Reader, size int64) error {
	key := c.Key(name)
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// Delete removes a mirrored image.
func (c *Client) Delete(ctx context.Context, name string) error {
	key := c.Key(name)
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// FileURL returns the public URL of a mirrored image. Uses the configured
// public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(name string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + c.Key(name)
	}
	return c.endpoint + "/" + c.bucket + "/" + c.Key(name)
}
