// Package service holds the collection reconcilers and the notification
// center, the pieces that keep local state consistent with the remote
// service and report outcomes to the operator.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/recordops/recordadmin/internal/core/ports"
)

// Reconciler owns the authoritative local snapshot of one remote collection
// and synchronizes it under optimistic-on-success semantics: the snapshot
// changes only after the server confirms an operation, so there is never a
// rollback path. Callers read through Snapshot/FilterBy and can never mutate
// the stored slice directly.
//
// Load failures leave the previous snapshot untouched and set a sticky error
// for a retry affordance; only mutation failures raise a transient
// notification. Nothing is retried automatically.
type Reconciler[T ports.Entity] struct {
	remote ports.RemoteCollection[T]
	notes  ports.Notifier
	log    zerolog.Logger
	name   string // singular, lower-case collection name for messages

	mu      sync.Mutex
	items   []T
	loaded  bool
	loadErr error
	loadSeq uint64 // token of the most recently issued Load
}

// NewReconciler returns a reconciler for one collection. name is the
// singular noun used in notification messages ("user", "post").
func NewReconciler[T ports.Entity](name string, remote ports.RemoteCollection[T], notes ports.Notifier, log zerolog.Logger) *Reconciler[T] {
	return &Reconciler[T]{
		remote: remote,
		notes:  notes,
		log:    log,
		name:   name,
	}
}

// Load fetches the full collection and replaces the snapshot. Each call takes
// a monotonically increasing token; a response whose token has been
// superseded by a newer Load is discarded without touching any state
// (last-issued-wins, not last-arrived-wins). Discarding is internal policy,
// not an error.
func (r *Reconciler[T]) Load(ctx context.Context) error {
	r.mu.Lock()
	r.loadSeq++
	seq := r.loadSeq
	r.mu.Unlock()

	items, err := r.remote.List(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.loadSeq {
		r.log.Debug().Str("collection", r.name).Uint64("token", seq).Msg("stale load response discarded")
		return nil
	}
	if err != nil {
		r.loadErr = err
		r.log.Error().Err(err).Str("collection", r.name).Msg("collection load failed")
		return err
	}
	r.items = items
	r.loaded = true
	r.loadErr = nil
	return nil
}

// Create sends the draft to the server and appends the returned entity,
// with its server-assigned id, to the snapshot, preserving insertion order.
// The server response, not the draft, is what lands locally.
func (r *Reconciler[T]) Create(ctx context.Context, draft T) (T, error) {
	created, err := r.remote.Create(ctx, draft)
	if err != nil {
		r.log.Error().Err(err).Str("collection", r.name).Msg("create failed")
		r.notes.ShowError(fmt.Sprintf("failed to create %s", r.name))
		return created, err
	}

	r.mu.Lock()
	r.items = append(r.items, created)
	r.mu.Unlock()

	r.log.Info().Str("collection", r.name).Int("id", created.EntityID()).Msg("created")
	r.notes.ShowSuccess(fmt.Sprintf("%s created", r.name))
	return created, nil
}

// Update replaces the entity on the server and swaps the matching local entry
// for the server's returned representation. All other entries are untouched.
func (r *Reconciler[T]) Update(ctx context.Context, id int, entity T) (T, error) {
	updated, err := r.remote.Update(ctx, id, entity)
	if err != nil {
		r.log.Error().Err(err).Str("collection", r.name).Int("id", id).Msg("update failed")
		r.notes.ShowError(fmt.Sprintf("failed to update %s", r.name))
		return updated, err
	}

	r.replace(id, updated)
	r.log.Info().Str("collection", r.name).Int("id", id).Msg("updated")
	r.notes.ShowSuccess(fmt.Sprintf("%s updated", r.name))
	return updated, nil
}

// Patch sends a partial field set and applies the server's full returned
// representation, exactly like Update. This is the quick-edit path.
func (r *Reconciler[T]) Patch(ctx context.Context, id int, fields map[string]any) (T, error) {
	updated, err := r.remote.Patch(ctx, id, fields)
	if err != nil {
		r.log.Error().Err(err).Str("collection", r.name).Int("id", id).Msg("patch failed")
		r.notes.ShowError(fmt.Sprintf("failed to update %s", r.name))
		return updated, err
	}

	r.replace(id, updated)
	r.log.Info().Str("collection", r.name).Int("id", id).Msg("patched")
	r.notes.ShowSuccess(fmt.Sprintf("%s updated", r.name))
	return updated, nil
}

// Remove deletes the entity on the server, then drops it from the snapshot by
// id match. The caller is responsible for the destructive-action confirmation
// before invoking this.
func (r *Reconciler[T]) Remove(ctx context.Context, id int) error {
	if err := r.remote.Delete(ctx, id); err != nil {
		r.log.Error().Err(err).Str("collection", r.name).Int("id", id).Msg("delete failed")
		r.notes.ShowError(fmt.Sprintf("failed to delete %s", r.name))
		return err
	}

	r.mu.Lock()
	kept := r.items[:0:0]
	for _, item := range r.items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	r.items = kept
	r.mu.Unlock()

	r.log.Info().Str("collection", r.name).Int("id", id).Msg("deleted")
	r.notes.ShowSuccess(fmt.Sprintf("%s deleted", r.name))
	return nil
}

func (r *Reconciler[T]) replace(id int, entity T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.EntityID() == id {
			r.items[i] = entity
			return
		}
	}
}

// Snapshot returns a copy of the current local snapshot in insertion order.
func (r *Reconciler[T]) Snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// FilterBy returns the entities matching pred, in snapshot order. A pure
// derived view; the stored snapshot is never mutated.
func (r *Reconciler[T]) FilterBy(pred func(T) bool) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []T
	for _, item := range r.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Find returns the snapshot entity with the given id.
func (r *Reconciler[T]) Find(id int) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Loaded reports whether at least one Load has succeeded.
func (r *Reconciler[T]) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

// LoadError returns the sticky error from the most recent failed Load, or nil
// once a later Load succeeds. Drives the page-level banner and its retry key.
func (r *Reconciler[T]) LoadError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadErr
}
