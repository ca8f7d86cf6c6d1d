package reconcile

import (
	"context"
	"sort"

	"nemoris-api/core/storage"

	"gorm.io/gorm"
)

// ReconcileAll builds (or reuses) the index for spec and returns one result per key
// found in either source, sorted by key.
func ReconcileAll(ctx context.Context, spec *Spec, cache *Cache, db *gorm.DB, client storage.Client) ([]Result, error) {
	idx, err := cache.GetOrBuild(ctx, spec, db, client)
	if err != nil {
		return nil, err
	}
	return resultsFromIndex(idx), nil
}

// ReconcileOne reports a single key. It uses the cached index when one is fresh and
// otherwise builds it.
func ReconcileOne(ctx context.Context, spec *Spec, cache *Cache, db *gorm.DB, client storage.Client, key string) (*Result, error) {
	idx, err := cache.GetOrBuild(ctx, spec, db, client)
	if err != nil {
		return nil, err
	}
	r := buildResult(key, idx)
	return &r, nil
}

func resultsFromIndex(idx *Index) []Result {
	union := make(map[string]struct{}, len(idx.References)+len(idx.StorageSet))
	for key := range idx.References {
		union[key] = struct{}{}
	}
	for key := range idx.StorageSet {
		union[key] = struct{}{}
	}

	results := make([]Result, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, idx))
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Key < results[j].Key
	})
	return results
}

func buildResult(key string, idx *Index) Result {
	owners, referenced := idx.References[key]
	_, stored := idx.StorageSet[key]

	r := Result{
		Key:            key,
		DBPresent:      referenced,
		StoragePresent: stored,
	}
	if referenced {
		r.Owners = append([]string(nil), owners...)
		sort.Strings(r.Owners)
	}
	return r
}
