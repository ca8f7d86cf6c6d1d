package reconcile

import (
	"context"
	"fmt"

	"nemoris-api/core/storage"

	"gorm.io/gorm"
)

// ReconcileWithPlan reconciles and returns the results with the actions that would fix
// them. Nothing is executed; see ApplyPlan.
func ReconcileWithPlan(ctx context.Context, spec *Spec, cache *Cache, db *gorm.DB, client storage.Client, opts Options) (*Plan, error) {
	results, err := ReconcileAll(ctx, spec, cache, db, client)
	if err != nil {
		return nil, err
	}

	summary, actions := buildPlan(results, opts)
	return &Plan{Results: results, Actions: actions, Summary: summary}, nil
}

// ApplyPlan executes the plan's actions through the adapter's Mutator and returns how
// many ran. It is a no-op unless opts is confirmed and not a dry run. The cached index
// is invalidated once anything ran.
func ApplyPlan(ctx context.Context, spec *Spec, cache *Cache, plan *Plan, opts Options) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun || len(plan.Actions) == 0 {
		return 0, nil
	}

	mutator, ok := spec.Adapter.(Mutator)
	if !ok {
		return 0, fmt.Errorf("adapter %s does not implement Mutator interface", spec.Adapter.Name())
	}
	defer func() {
		if executed > 0 {
			cache.Invalidate(spec)
		}
	}()

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDeleteStorage:
			if err := mutator.DeleteStorage(ctx, action.Key); err != nil {
				return executed, fmt.Errorf("failed to delete object %s: %w", action.Key, err)
			}
		case ActionClearReference:
			if err := mutator.ClearReferences(ctx, action.Key); err != nil {
				return executed, fmt.Errorf("failed to clear references to %s: %w", action.Key, err)
			}
		default:
			return executed, fmt.Errorf("unknown action type %q", action.Type)
		}
		executed++
	}
	return executed, nil
}

// ReconcileAndApply plans and, when opts allow it, applies.
func ReconcileAndApply(ctx context.Context, spec *Spec, cache *Cache, db *gorm.DB, client storage.Client, opts Options) (*Plan, int, error) {
	plan, err := ReconcileWithPlan(ctx, spec, cache, db, client, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, spec, cache, plan, opts)
	return plan, executed, err
}

func buildPlan(results []Result, opts Options) (Summary, []Action) {
	summary := Summary{TotalKeys: len(results)}
	actions := make([]Action, 0)

	for _, r := range results {
		switch {
		case r.DBPresent && !r.StoragePresent:
			summary.MissingStorage++
			if opts.DoPurge {
				actions = append(actions, Action{
					Type:   ActionClearReference,
					Key:    r.Key,
					Reason: fmt.Sprintf("object missing, referenced by %v", r.Owners),
				})
			}
		case r.StoragePresent && !r.DBPresent:
			summary.Orphaned++
			if opts.DoPurge {
				actions = append(actions, Action{
					Type:   ActionDeleteStorage,
					Key:    r.Key,
					Reason: "not referenced by any record",
				})
			}
		}
	}

	summary.PurgeActions = len(actions)
	return summary, actions
}
