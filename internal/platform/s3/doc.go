// Package s3 provides a client for S3-compatible object storage.
//
// It is used to keep deployment ledgers off the machine that ran the
// deploy, so a later remove can run from anywhere with the same
// credentials. Objects are addressed with s3://bucket/key URIs.
package s3
