// Package render mounts node descriptions into a DOM and keeps them in sync.
//
// A Renderer owns one mount container, the tree it patched last and a queue
// of lifecycle callbacks. Render requests are debounced: ScheduleRender posts
// at most one render task to the scheduler until that task runs, so a burst
// of state changes produces a single pass.
//
// # Basic Usage
//
//	l := loop.New()
//	r := render.Init(container, view, actions, render.WithScheduler(l))
//	l.Drain() // runs the first pass
//
// # Reconciliation
//
// Each pass resolves the view, then patches the previous tree into the new
// one. Elements with the same tag are updated in place; keyed children are
// moved rather than recreated; everything else is replaced. Mismatched
// old/new shapes abort the pass with an E001 error.
//
// # Recycling
//
// When the container already holds an element at Init, the renderer rebuilds
// a tree from that markup and runs the first pass in recycling mode: children
// match positionally and oncreate fires for matched elements instead of
// onupdate.
//
// # Lifecycle
//
// oncreate and onupdate callbacks are queued during a pass and run after it,
// last queued first. onremove defers the removal until its done callback is
// called; ondestroy runs for a removed element and all its descendants.
//
// # Server-side rendering
//
// WriteHTML and HTML serialise a tree to markup that Init can later recycle.
package render
