package reconcile

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"nemoris-api/core/storage"
	"nemoris-api/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// mockAdapter serves fixed indices and counts loads.
type mockAdapter struct {
	refs       map[string][]string
	stored     map[string]struct{}
	refsErr    error
	storageErr error
	loads      atomic.Int32
}

func (m *mockAdapter) Name() string { return "mock" }

func (m *mockAdapter) LoadReferences(ctx context.Context, db *gorm.DB) (map[string][]string, error) {
	m.loads.Add(1)
	return m.refs, m.refsErr
}

func (m *mockAdapter) LoadStorageSet(ctx context.Context, client storage.Client, bucket, prefix string) (map[string]struct{}, error) {
	return m.stored, m.storageErr
}

// mutatingAdapter records mutations.
type mutatingAdapter struct {
	*mockAdapter
	cleared []string
	deleted []string
	failOn  string
}

func (m *mutatingAdapter) ClearReferences(ctx context.Context, key string) error {
	if key == m.failOn {
		return errors.New("boom")
	}
	m.cleared = append(m.cleared, key)
	return nil
}

func (m *mutatingAdapter) DeleteStorage(ctx context.Context, key string) error {
	if key == m.failOn {
		return errors.New("boom")
	}
	m.deleted = append(m.deleted, key)
	return nil
}

func set(keys ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func fixture() *mockAdapter {
	return &mockAdapter{
		refs: map[string][]string{
			"doctors/grey.png":  {"doctor:1"},
			"doctors/house.png": {"doctor:2", "patient:9"},
			"patients/ada.png":  {"patient:1"},
		},
		stored: set("doctors/grey.png", "doctors/house.png", "doctors/old.png"),
	}
}

func TestReconcileAll(t *testing.T) {
	spec := &Spec{Adapter: fixture(), Bucket: "media"}

	results, err := ReconcileAll(context.Background(), spec, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, []string{"doctors/grey.png", "doctors/house.png", "doctors/old.png", "patients/ada.png"},
		[]string{results[0].Key, results[1].Key, results[2].Key, results[3].Key})

	assert.True(t, results[0].DBPresent)
	assert.True(t, results[0].StoragePresent)
	assert.Equal(t, []string{"doctor:2", "patient:9"}, results[1].Owners)

	assert.False(t, results[2].DBPresent)
	assert.True(t, results[2].StoragePresent)
	assert.Empty(t, results[2].Owners)

	assert.True(t, results[3].DBPresent)
	assert.False(t, results[3].StoragePresent)
}

func TestReconcileOne(t *testing.T) {
	spec := &Spec{Adapter: fixture(), Bucket: "media"}

	r, err := ReconcileOne(context.Background(), spec, nil, nil, nil, "patients/ada.png")
	require.NoError(t, err)
	assert.True(t, r.DBPresent)
	assert.False(t, r.StoragePresent)

	r, err = ReconcileOne(context.Background(), spec, nil, nil, nil, "nowhere.png")
	require.NoError(t, err)
	assert.False(t, r.DBPresent)
	assert.False(t, r.StoragePresent)
}

func TestBuildIndex_ErrorHandling(t *testing.T) {
	tests := []struct {
		name       string
		refsErr    error
		storageErr error
		expectErr  string
	}{
		{name: "References load error", refsErr: errors.New("db error"), expectErr: "db error"},
		{name: "Storage load error", storageErr: errors.New("storage error"), expectErr: "storage error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := fixture()
			adapter.refsErr = tt.refsErr
			adapter.storageErr = tt.storageErr

			_, err := BuildIndex(context.Background(), &Spec{Adapter: adapter}, nil, nil)
			assert.EqualError(t, err, tt.expectErr)
		})
	}
}

func TestCache_GetOrBuild(t *testing.T) {
	t.Run("Reuses fresh index", func(t *testing.T) {
		adapter := fixture()
		spec := &Spec{Adapter: adapter, Bucket: "media", CacheTTL: time.Minute}
		cache := NewCache()

		first, err := cache.GetOrBuild(context.Background(), spec, nil, nil)
		require.NoError(t, err)
		second, err := cache.GetOrBuild(context.Background(), spec, nil, nil)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.EqualValues(t, 1, adapter.loads.Load())
	})

	t.Run("Zero TTL always rebuilds", func(t *testing.T) {
		adapter := fixture()
		spec := &Spec{Adapter: adapter, Bucket: "media"}
		cache := NewCache()

		for i := 0; i < 3; i++ {
			_, err := cache.GetOrBuild(context.Background(), spec, nil, nil)
			require.NoError(t, err)
		}
		assert.EqualValues(t, 3, adapter.loads.Load())
	})

	t.Run("Invalidate forces rebuild", func(t *testing.T) {
		adapter := fixture()
		spec := &Spec{Adapter: adapter, Bucket: "media", CacheTTL: time.Minute}
		cache := NewCache()

		_, err := cache.GetOrBuild(context.Background(), spec, nil, nil)
		require.NoError(t, err)
		cache.Invalidate(spec)
		_, err = cache.GetOrBuild(context.Background(), spec, nil, nil)
		require.NoError(t, err)

		assert.EqualValues(t, 2, adapter.loads.Load())
	})

	t.Run("Specs are isolated", func(t *testing.T) {
		adapter := fixture()
		cache := NewCache()

		_, err := cache.GetOrBuild(context.Background(), &Spec{Adapter: adapter, Bucket: "media", CacheTTL: time.Minute}, nil, nil)
		require.NoError(t, err)
		_, err = cache.GetOrBuild(context.Background(), &Spec{Adapter: adapter, Bucket: "media", StoragePrefix: "doctors/", CacheTTL: time.Minute}, nil, nil)
		require.NoError(t, err)

		assert.EqualValues(t, 2, adapter.loads.Load())
	})

	t.Run("Errors are not cached", func(t *testing.T) {
		adapter := fixture()
		adapter.refsErr = errors.New("db error")
		spec := &Spec{Adapter: adapter, Bucket: "media", CacheTTL: time.Minute}
		cache := NewCache()

		_, err := cache.GetOrBuild(context.Background(), spec, nil, nil)
		require.Error(t, err)

		adapter.refsErr = nil
		_, err = cache.GetOrBuild(context.Background(), spec, nil, nil)
		require.NoError(t, err)
	})
}

func TestBuildIndexPrefixScope(t *testing.T) {
	adapter := fixture()
	spec := &Spec{Adapter: adapter, Bucket: "media", StoragePrefix: "doctors/"}

	idx, err := BuildIndex(context.Background(), spec, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, idx.References, "doctors/grey.png")
	assert.Contains(t, idx.References, "doctors/house.png")
	assert.NotContains(t, idx.References, "patients/ada.png")
	assert.Contains(t, adapter.refs, "patients/ada.png", "adapter data must not be modified")
}

func TestListStorageSet(t *testing.T) {
	t.Run("Skips directory markers", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "media", minio.ListObjectsOptions{Prefix: "doctors/", Recursive: true}).
			Return(mocks.Objects(
				minio.ObjectInfo{Key: "doctors/"},
				minio.ObjectInfo{Key: "doctors/grey.png"},
			))

		got, err := ListStorageSet(context.Background(), client, "media", "doctors/")
		require.NoError(t, err)
		assert.Equal(t, set("doctors/grey.png"), got)
	})

	t.Run("Listing error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "media", mock.Anything).
			Return(mocks.Objects(minio.ObjectInfo{Err: errors.New("access denied")}))

		_, err := ListStorageSet(context.Background(), client, "media", "")
		assert.ErrorContains(t, err, "access denied")
	})
}
