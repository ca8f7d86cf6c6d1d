package reconcile

import (
	"strings"
	"time"
)

// Result is the reconciliation outcome for a single object key.
type Result struct {
	// Key is the object key in the media bucket.
	Key string `json:"key"`

	// DBPresent reports whether at least one record references the key.
	DBPresent bool `json:"dbPresent"`

	// StoragePresent reports whether the object exists in the bucket.
	StoragePresent bool `json:"storagePresent"`

	// Owners lists the records referencing the key, e.g. "doctor:3".
	Owners []string `json:"owners,omitempty"`
}

// Spec bundles the adapter with the storage scope it reconciles.
type Spec struct {
	// Adapter provides model-specific loading and key extraction.
	Adapter Adapter

	// Bucket is the media bucket.
	Bucket string

	// StoragePrefix limits the storage listing; "" lists the whole bucket.
	StoragePrefix string

	// CacheTTL is how long built indices are reused. Zero disables caching.
	CacheTTL time.Duration
}

// CacheKey identifies the indices built for this spec.
func (s *Spec) CacheKey() string {
	return strings.Join([]string{s.Adapter.Name(), s.Bucket, s.StoragePrefix}, "|")
}

// ActionType is the kind of a planned mutation.
type ActionType string

const (
	// ActionDeleteStorage removes an object no record references.
	ActionDeleteStorage ActionType = "delete_storage"
	// ActionClearReference blanks record fields pointing at a missing object.
	ActionClearReference ActionType = "clear_reference"
)

// Action is a planned mutation.
type Action struct {
	Type   ActionType `json:"type"`
	Key    string     `json:"key"`
	Reason string     `json:"reason"`
}

// Plan contains reconciliation results and the actions that would fix them.
type Plan struct {
	Results []Result `json:"results"`
	Actions []Action `json:"actions"`
	Summary Summary  `json:"summary"`
}

// Summary provides aggregate counts for a plan.
type Summary struct {
	// TotalKeys is the number of distinct keys across both sources.
	TotalKeys int `json:"totalKeys"`
	// MissingStorage counts referenced keys with no object behind them.
	MissingStorage int `json:"missingStorage"`
	// Orphaned counts objects no record references.
	Orphaned int `json:"orphaned"`
	// PurgeActions counts planned actions.
	PurgeActions int `json:"purgeActions"`
}

// Options controls planning and execution.
type Options struct {
	// DryRun prevents execution even when confirmed.
	DryRun bool
	// DoPurge plans actions for every inconsistent key.
	DoPurge bool
	// Confirmed must be set for ApplyPlan to mutate anything.
	Confirmed bool
}
