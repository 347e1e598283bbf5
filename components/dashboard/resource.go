package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var errFetchAborted = errors.New("dashboard: fetch aborted before completion")

// ViewState is the lifecycle of a view's data.
type ViewState string

const (
	StateIdle    ViewState = "idle"
	StateLoading ViewState = "loading"
	StateLoaded  ViewState = "loaded"
	StateErrored ViewState = "errored"
)

// Snapshot is a point-in-time copy of a Resource.
type Snapshot[T any] struct {
	State     ViewState `json:"state"`
	Loading   bool      `json:"loading"`
	Data      T         `json:"data"`
	HasData   bool      `json:"has_data"`
	Err       error     `json:"-"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Resource holds one fetched payload and its loading state. Every Begin issues
// a new token; only the latest token may replace the data, so overlapping
// refreshes resolve to the most recently issued request.
type Resource[T any] struct {
	name      string
	logger    *slog.Logger
	telemetry Telemetry
	now       func() time.Time
	onLoaded  func(context.Context, T)

	mu        sync.RWMutex
	state     ViewState
	latest    uint64
	data      T
	hasData   bool
	err       error
	updatedAt time.Time
}

// NewResource builds an idle resource. name is used in logs and telemetry.
func NewResource[T any](name string, logger *slog.Logger, telemetry Telemetry) *Resource[T] {
	return &Resource[T]{
		name:      name,
		logger:    normalizeLogger(logger),
		telemetry: normalizeTelemetry(telemetry),
		now:       time.Now,
		state:     StateIdle,
	}
}

// OnLoaded registers fn to run after a response replaces the data. It must be
// set before the first Load.
func (r *Resource[T]) OnLoaded(fn func(context.Context, T)) *Resource[T] {
	r.onLoaded = fn
	return r
}

// Begin marks the resource loading and returns the request token.
func (r *Resource[T]) Begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest++
	r.state = StateLoading
	return r.latest
}

// Complete settles the request identified by token. Responses for tokens
// older than the latest issued are discarded. Failures keep the previous data.
func (r *Resource[T]) Complete(ctx context.Context, token uint64, data T, err error) {
	r.mu.Lock()
	if token != r.latest {
		r.mu.Unlock()
		r.logger.DebugContext(ctx, "discarding stale response", "view", r.name, "token", token)
		return
	}
	if err != nil {
		r.state = StateErrored
		r.err = err
		r.mu.Unlock()
		r.logger.ErrorContext(ctx, "failed to load view data", "view", r.name, "error", err)
		r.telemetry.Record(ctx, "dashboard.view.error", map[string]any{
			"view":  r.name,
			"error": err.Error(),
		})
		return
	}
	r.data = data
	r.hasData = true
	r.err = nil
	r.state = StateLoaded
	r.updatedAt = r.now()
	r.mu.Unlock()
	if r.onLoaded != nil {
		r.onLoaded(ctx, data)
	}
	r.telemetry.Record(ctx, "dashboard.view.loaded", map[string]any{"view": r.name})
}

// Load runs fetch between Begin and Complete and returns its error.
func (r *Resource[T]) Load(ctx context.Context, fetch func(context.Context) (T, error)) error {
	token := r.Begin()
	settled := false
	defer func() {
		if !settled {
			var zero T
			r.Complete(ctx, token, zero, errFetchAborted)
		}
	}()
	data, err := fetch(ctx)
	settled = true
	r.Complete(ctx, token, data, err)
	return err
}

// Snapshot copies the current state.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := Snapshot[T]{
		State:     r.state,
		Loading:   r.state == StateLoading,
		Data:      r.data,
		HasData:   r.hasData,
		Err:       r.err,
		UpdatedAt: r.updatedAt,
	}
	if r.err != nil {
		snap.Error = r.err.Error()
	}
	return snap
}

// Loading reports whether the latest request is still in flight.
func (r *Resource[T]) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state == StateLoading
}

// State reports the lifecycle state.
func (r *Resource[T]) State() ViewState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}
