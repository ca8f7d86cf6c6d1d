package reconcile

import (
	"context"
	"strings"
	"sync"
	"time"

	"nemoris-api/core/storage"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Index holds the loaded sources for one spec.
type Index struct {
	// References maps referenced keys to their owners.
	References map[string][]string

	// StorageSet is the set of keys present in storage.
	StorageSet map[string]struct{}

	// Built is when the index was loaded.
	Built time.Time

	// TTL is how long the index stays fresh.
	TTL time.Duration
}

// IsExpired reports whether the index must be rebuilt.
func (i *Index) IsExpired() bool {
	if i.TTL == 0 {
		return true
	}
	return time.Since(i.Built) > i.TTL
}

// Cache keeps built indices per spec and deduplicates concurrent builds.
type Cache struct {
	mu      sync.RWMutex
	indices map[string]*Index
	sf      singleflight.Group
}

// NewCache creates an empty index cache.
func NewCache() *Cache {
	return &Cache{indices: make(map[string]*Index)}
}

// BuildIndex loads both sources concurrently and keeps only references under
// spec.StoragePrefix. It does not consult or fill any cache.
func BuildIndex(ctx context.Context, spec *Spec, db *gorm.DB, client storage.Client) (*Index, error) {
	var (
		refs map[string][]string
		set  map[string]struct{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		refs, err = spec.Adapter.LoadReferences(gctx, db)
		return err
	})
	g.Go(func() error {
		var err error
		set, err = spec.Adapter.LoadStorageSet(gctx, client, spec.Bucket, spec.StoragePrefix)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// References outside the listed prefix cannot be compared against storage.
	if spec.StoragePrefix != "" {
		scoped := make(map[string][]string, len(refs))
		for key, owners := range refs {
			if strings.HasPrefix(key, spec.StoragePrefix) {
				scoped[key] = owners
			}
		}
		refs = scoped
	}

	return &Index{
		References: refs,
		StorageSet: set,
		Built:      time.Now(),
		TTL:        spec.CacheTTL,
	}, nil
}

// GetOrBuild returns a fresh cached index for spec or builds one. A nil cache always builds.
func (c *Cache) GetOrBuild(ctx context.Context, spec *Spec, db *gorm.DB, client storage.Client) (*Index, error) {
	if c == nil {
		return BuildIndex(ctx, spec, db, client)
	}

	key := spec.CacheKey()
	if idx := c.fresh(key); idx != nil {
		return idx, nil
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if idx := c.fresh(key); idx != nil {
			return idx, nil
		}

		idx, err := BuildIndex(ctx, spec, db, client)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.indices[key] = idx
		c.mu.Unlock()
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Index), nil
}

// Invalidate drops the cached index for spec.
func (c *Cache) Invalidate(spec *Spec) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.indices, spec.CacheKey())
	c.mu.Unlock()
}

func (c *Cache) fresh(key string) *Index {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if idx, ok := c.indices[key]; ok && !idx.IsExpired() {
		return idx
	}
	return nil
}
