// Package storage provides the media storage connection for doctor and patient images.
//
// It wraps the MinIO Go client behind a narrow interface, which works against AWS S3
// and self-hosted MinIO alike and can be mocked in tests (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: used by EnsureBucket at startup.
//   - ListObjects: enumerates stored media.
//   - PresignedGetObject: issues time-limited download URLs.
//   - RemoveObject: deletes orphaned media during reconciliation.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
