package domain

import (
	"encoding/json"
	"sync"
)

// Entry bundles a registered Task with the per-run and cross-run state the
// resolver needs: the cached key loaded from the persisted cache, and the
// in-flight "pending" handle used to de-duplicate concurrent requests for
// any of the task's targets within one driver invocation.
//
// Unlike the teacher's Graph (which stores plain domain.Task values), an
// Entry is a pointer shared by every target the task produces, because
// spec.md §4.5's "same-target re-request returns the same pending" must
// hold across all of a multi-target task's names, not just one.
type Entry struct {
	Task *Task

	mu        sync.Mutex
	cachedKey json.RawMessage
	pending   *pending
}

// CachedKey returns the key loaded from (or most recently written to) the
// persisted cache, and whether one is present at all.
func (e *Entry) CachedKey() (json.RawMessage, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cachedKey, e.cachedKey != nil
}

// SetCachedKey installs the key value, called by the cache store at load
// time and by the resolver after a successful run.
func (e *Entry) SetCachedKey(raw json.RawMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cachedKey = raw
}

// ClearCachedKey drops the in-memory cached key, called at driver startup
// before the persisted cache is (re)loaded (spec.md §4.4).
func (e *Entry) ClearCachedKey() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cachedKey = nil
}

// pending is the one-shot handle backing "a task runs at most once per
// driver invocation" (spec.md §4.5). It is a minimal future: awaiters block
// on done until the owning goroutine closes it and records err.
type pending struct {
	done chan struct{}
	err  error
}

func newPending() *pending {
	return &pending{done: make(chan struct{})}
}

// Finish records the outcome of the task-update body and wakes every
// caller blocked in Wait. Called exactly once by whichever caller got
// created=true from GetOrCreatePending.
func (p *pending) Finish(err error) {
	p.err = err
	close(p.done)
}

// Wait blocks until Finish has been called and returns its error.
func (p *pending) Wait() error {
	<-p.done
	return p.err
}

// GetOrCreatePending returns e's current pending handle, creating one (and
// reporting created=true) if none exists yet. The caller that gets
// created=true is responsible for running the task body and calling
// Finish on the returned handle.
func (e *Entry) GetOrCreatePending() (p *pending, created bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending != nil {
		return e.pending, false
	}
	e.pending = newPending()
	return e.pending, true
}

// Registry is the task registry of spec.md §4.5: a map from target name to
// task, enforcing Invariant A (a second registration for the same target
// silently replaces the first).
type Registry struct {
	mu      sync.Mutex
	entries map[string]*Entry
	order   []*Entry // unique entries in registration order, for cache persistence
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// AddTask registers t. For every target in t.Targets, any previously
// registered task for that exact target name is replaced (Invariant A).
// t's other targets are untouched even if they belonged to a task being
// partially overwritten by this call.
func (r *Registry) AddTask(t *Task) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := &Entry{Task: t}
	r.order = append(r.order, entry)
	for _, target := range t.Targets {
		r.entries[target.String()] = entry
	}
	return entry
}

// Lookup returns the entry registered for target, if any.
func (r *Registry) Lookup(target string) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[target]
	return e, ok
}

// HasTarget reports whether target is produced by some registered task.
// The compile task's registry-collision check makes the same membership
// test through Lookup, so it can name the producing task (spec.md §9 Open
// Question (a): true membership testing, not the upstream literal-string bug).
func (r *Registry) HasTarget(target string) bool {
	_, ok := r.Lookup(target)
	return ok
}

// Entries returns every distinct registered Entry, in registration order.
// A task with multiple targets appears exactly once, even though it may be
// reachable under several target names.
func (r *Registry) Entries() []*Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Entry, len(r.order))
	copy(out, r.order)
	return out
}

// ClearCachedKeys drops every entry's in-memory cached key (spec.md §4.4,
// called at driver startup before the persisted cache is reloaded).
func (r *Registry) ClearCachedKeys() {
	for _, e := range r.Entries() {
		e.ClearCachedKey()
	}
}
