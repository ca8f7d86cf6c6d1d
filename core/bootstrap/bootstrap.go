package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"nemoris-api/core/storage"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotReady is returned while a dependency's initializer is still running.
	ErrNotReady = errors.New("dependency is still initializing")
	// ErrUnavailable is returned when a dependency's initializer failed.
	ErrUnavailable = errors.New("dependency unavailable")
)

// State is the aggregate initialization state of the process dependencies.
type State int32

const (
	StateInitializing State = iota
	StateReady
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Connectors are the initializers run once at process start.
type Connectors struct {
	Database func(ctx context.Context) (*gorm.DB, error)
	Storage  func(ctx context.Context) (storage.Client, error)
}

type outcome[T any] struct {
	value T
	err   error
}

// handle is written exactly once by its initializer and read lock-free afterwards.
type handle[T any] struct {
	name string
	res  atomic.Pointer[outcome[T]]
}

func (h *handle[T]) get() (T, error) {
	var zero T
	o := h.res.Load()
	if o == nil {
		return zero, fmt.Errorf("%s: %w", h.name, ErrNotReady)
	}
	if o.err != nil {
		return zero, fmt.Errorf("%s: %w: %w", h.name, ErrUnavailable, o.err)
	}
	return o.value, nil
}

func (h *handle[T]) failed() bool {
	o := h.res.Load()
	return o == nil || o.err != nil
}

// Dependencies holds the process-wide connection handles handed to the route groups.
type Dependencies struct {
	db    handle[*gorm.DB]
	store handle[storage.Client]
	state atomic.Int32
	done  chan struct{}
}

func newDependencies() *Dependencies {
	d := &Dependencies{done: make(chan struct{})}
	d.db.name = "database"
	d.store.name = "storage"
	return d
}

// Start runs the database initializer and the storage initializer on their own
// goroutines and returns without waiting for either. The storage initializer is not
// called until the database initializer has been entered; neither waits for the other
// to finish. Failures and panics are logged and recorded; they never propagate to the
// caller.
func Start(ctx context.Context, conns Connectors, logg *zap.Logger) *Dependencies {
	d := newDependencies()
	dbEntered := make(chan struct{})

	var wg conc.WaitGroup
	wg.Go(func() { connect(ctx, logg, conns.Database, &d.db, dbEntered) })
	wg.Go(func() {
		<-dbEntered
		connect(ctx, logg, conns.Storage, &d.store, nil)
	})

	go func() {
		wg.Wait()
		if d.db.failed() || d.store.failed() {
			d.state.Store(int32(StateDegraded))
			logg.Warn("Dependencies initialized with failures", zap.Stringer("state", StateDegraded))
		} else {
			d.state.Store(int32(StateReady))
			logg.Info("Dependencies initialized", zap.Stringer("state", StateReady))
		}
		close(d.done)
	}()

	return d
}

// connect runs fn once and records its outcome in h. entered, when set, is closed
// as fn is called.
func connect[T any](ctx context.Context, logg *zap.Logger, fn func(context.Context) (T, error), h *handle[T], entered chan<- struct{}) {
	var (
		value T
		err   error
	)

	if fn == nil {
		if entered != nil {
			close(entered)
		}
		err = errors.New("no initializer configured")
	} else if r := panics.Try(func() {
		if entered != nil {
			close(entered)
		}
		value, err = fn(ctx)
	}); r != nil {
		err = r.AsError()
	}

	h.res.Store(&outcome[T]{value: value, err: err})

	if err != nil {
		logg.Warn("Dependency initialization failed", zap.String("dependency", h.name), zap.Error(err))
		return
	}
	logg.Info("Dependency initialized", zap.String("dependency", h.name))
}

// Static returns already-resolved dependencies. A nil handle is reported as unavailable.
func Static(db *gorm.DB, store storage.Client) *Dependencies {
	d := newDependencies()

	dbOutcome := &outcome[*gorm.DB]{value: db}
	if db == nil {
		dbOutcome.err = errors.New("not configured")
	}
	storeOutcome := &outcome[storage.Client]{value: store}
	if store == nil {
		storeOutcome.err = errors.New("not configured")
	}
	d.db.res.Store(dbOutcome)
	d.store.res.Store(storeOutcome)

	if db == nil || store == nil {
		d.state.Store(int32(StateDegraded))
	} else {
		d.state.Store(int32(StateReady))
	}
	close(d.done)
	return d
}

// DB returns the database handle, ErrNotReady, or an error wrapping ErrUnavailable.
func (d *Dependencies) DB() (*gorm.DB, error) {
	return d.db.get()
}

// Storage returns the media storage handle, ErrNotReady, or an error wrapping ErrUnavailable.
func (d *Dependencies) Storage() (storage.Client, error) {
	return d.store.get()
}

// State reports the aggregate initialization state.
func (d *Dependencies) State() State {
	return State(d.state.Load())
}

// Wait blocks until both initializers have finished or ctx is done.
func (d *Dependencies) Wait(ctx context.Context) error {
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
