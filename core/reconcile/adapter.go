package reconcile

import (
	"context"
	"fmt"
	"strings"

	"nemoris-api/core/storage"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// Adapter defines how a model's media references are loaded.
type Adapter interface {
	// Name returns the unique name of this adapter.
	Name() string

	// LoadReferences returns every referenced object key with the records that reference it.
	LoadReferences(ctx context.Context, db *gorm.DB) (map[string][]string, error)

	// LoadStorageSet returns the set of object keys present under prefix.
	LoadStorageSet(ctx context.Context, client storage.Client, bucket, prefix string) (map[string]struct{}, error)
}

// Mutator is implemented by adapters that can repair inconsistencies.
type Mutator interface {
	// ClearReferences blanks every record field that points at key.
	ClearReferences(ctx context.Context, key string) error
	// DeleteStorage removes the object at key.
	DeleteStorage(ctx context.Context, key string) error
}

// ListStorageSet is the common LoadStorageSet: one recursive listing, directory
// markers skipped, no per-object HEAD calls.
func ListStorageSet(ctx context.Context, client storage.Client, bucket, prefix string) (map[string]struct{}, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	set := make(map[string]struct{})
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		set[obj.Key] = struct{}{}
	}
	return set, nil
}
