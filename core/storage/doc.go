// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for storing
// and garbage-collecting question images. The abstraction supports both AWS
// S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easy to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: Verify or create the image bucket.
//   - PutObject / GetObject: Upload and stream question images.
//   - ListObjects: Enumerate stored images (prefix "images/").
//   - RemoveObject / RemoveObjects: Delete orphaned images after cleanup.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "quizzes")
package storage
