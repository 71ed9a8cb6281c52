// Package action provides the action container: one piece of reactive state
// with a live view, a reversible view backed by a history log, and the
// renderer that redraws when the state changes.
package action

import (
	"sort"

	"github.com/vango-dev/hyperoop/internal/identity"
	"github.com/vango-dev/hyperoop/pkg/history"
	"github.com/vango-dev/hyperoop/pkg/state"
)

// Renderer schedules a redraw.
type Renderer interface {
	ScheduleRender()
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func()

// ScheduleRender calls f.
func (f RendererFunc) ScheduleRender() { f() }

// Parent is what a dependent container inherits from.
type Parent interface {
	Renderer() Renderer
	History() *history.Log
}

// Option configures an Actions container.
type Option func(*Actions)

// WithHistoryDepth gives the container its own history log of the given
// depth.
func WithHistoryDepth(depth int) Option {
	return func(a *Actions) {
		a.hist = history.New(depth)
	}
}

// WithHistory shares an existing history log.
func WithHistory(h *history.Log) Option {
	return func(a *Actions) {
		a.hist = h
	}
}

// Actions owns a backing state map and its two views.
type Actions struct {
	orig     state.Map
	live     *state.View
	remember *state.View
	hist     *history.Log
	renderer Renderer
}

// New creates a container over initial. A nil initial map starts empty.
// Without a history option the reversible view is nil.
func New(initial state.Map, opts ...Option) *Actions {
	if initial == nil {
		initial = state.Map{}
	}
	a := &Actions{orig: initial}
	for _, opt := range opts {
		opt(a)
	}
	a.build()
	return a
}

// NewSub creates a dependent container that shares parent's history. When
// parent already has a renderer, render requests are forwarded to whatever
// renderer parent holds at the time of the request; otherwise the container
// must be initialized with Init.
func NewSub(initial state.Map, parent Parent) *Actions {
	a := New(initial, WithHistory(parent.History()))
	if parent.Renderer() != nil {
		a.Init(RendererFunc(func() {
			if r := parent.Renderer(); r != nil {
				r.ScheduleRender()
			}
		}))
	}
	return a
}

// Init attaches r and rebuilds both views over the same backing map.
func (a *Actions) Init(r Renderer) {
	a.renderer = r
	a.build()
}

func (a *Actions) build() {
	a.live = state.Wrap(a.orig, a.notify)
	a.remember = state.WrapHistory(a.orig, a.notify, a.hist)
}

func (a *Actions) notify() {
	if a.renderer != nil {
		a.renderer.ScheduleRender()
	}
}

// State returns the live view. Writes through it commit immediately and
// schedule a render.
func (a *Actions) State() *state.View { return a.live }

// Remember returns the reversible view, or nil when the container has no
// history log.
func (a *Actions) Remember() *state.View { return a.remember }

// History returns the owned or shared history log, or nil.
func (a *Actions) History() *history.Log { return a.hist }

// Renderer returns the attached renderer, or nil before Init.
func (a *Actions) Renderer() Renderer { return a.renderer }

// Set applies every entry of partial that differs from the current state and
// schedules one render. Keys absent from the state count as changes. With
// remember and a history log, all changes form a single undoable record.
// Set does nothing when no entry differs.
func (a *Actions) Set(partial state.Map, remember bool) {
	var keys []string
	for k, v := range partial {
		if old, ok := a.orig[k]; !ok || !identity.Same(old, v) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)

	if !remember || a.hist == nil {
		for _, k := range keys {
			a.orig[k] = partial[k]
		}
		a.notify()
		return
	}

	was := make(state.Map, len(keys))
	var wasnt []string
	for _, k := range keys {
		if old, ok := a.orig[k]; ok {
			was[k] = old
		} else {
			wasnt = append(wasnt, k)
		}
	}
	next := make(state.Map, len(keys))
	for _, k := range keys {
		next[k] = partial[k]
	}

	a.hist.Add(history.Record{
		Redo: func() {
			for k, v := range next {
				a.orig[k] = v
			}
			a.notify()
		},
		Undo: func() {
			for k, v := range was {
				a.orig[k] = v
			}
			for _, k := range wasnt {
				delete(a.orig, k)
			}
			a.notify()
		},
	})
}
