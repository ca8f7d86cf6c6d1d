// Package reconcile compares the media keys records point at with the objects that
// actually exist in the media bucket.
//
// Both sources are loaded concurrently into an in-memory Index: one batch query for the
// references and one recursive listing for the bucket. The union of keys is then
// classified:
//
//   - referenced and stored: consistent
//   - referenced only: a broken reference (MissingStorage)
//   - stored only: an orphaned object (Orphaned)
//
// # Adapters
//
// An Adapter knows which records carry media keys. Adapters that also implement Mutator
// can repair a plan: orphaned objects are deleted and broken references are cleared.
//
// # Caching
//
// A Cache reuses indices for Spec.CacheTTL and collapses concurrent builds for the same
// spec into one.
//
// # Usage
//
//	spec := &reconcile.Spec{Adapter: adapter, Bucket: "media", CacheTTL: time.Minute}
//	plan, err := reconcile.ReconcileWithPlan(ctx, spec, cache, db, client, reconcile.Options{DoPurge: true})
//	n, err := reconcile.ApplyPlan(ctx, spec, cache, plan, reconcile.Options{DoPurge: true, Confirmed: true})
package reconcile
