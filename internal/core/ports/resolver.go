package ports

import "context"

// Resolver drives targets to completion: for each, it ensures the
// producing task (and transitively its prerequisites) has run and its
// output is up to date, per spec.md §4.5.
//
// internal/build's task bodies depend on Resolver rather than the concrete
// engine/resolver package, so that the dependency runs build -> ports ->
// (adapters implement ports) instead of build -> engine -> build.
type Resolver interface {
	// Resolve ensures every target in targets is up to date. requesterLabel
	// identifies the task asking for them, used only for diagnostics.
	Resolve(ctx context.Context, targets []string, requesterLabel string) error
}
