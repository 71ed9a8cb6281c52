// Package hyperoop provides the public API for hyperoop: virtual DOM
// rendering with keyed reconciliation, reactive state and undo history.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/hyperoop"
//
// Usage:
//
//	acts := hyperoop.New(hyperoop.Map{"count": 0})
//	view := hyperoop.View(acts, func(a *hyperoop.Actions) *hyperoop.VNode {
//	    return vdom.Div(
//	        vdom.H1(state.Value[int](a.State(), "count")),
//	        vdom.Button(vdom.OnClick(func() {
//	            a.State().Set("count", state.Value[int](a.State(), "count")+1)
//	        }), "+"),
//	    )
//	})
//	r := hyperoop.Init(body, view, acts)
//	defer r.Close()
//
// Without WithScheduler the renderer runs its passes on a goroutine of its
// own, and body belongs to that goroutine. Pass WithScheduler(l) with a
// loop.Loop to drive passes yourself with l.Run or l.Drain.
package hyperoop

import (
	"github.com/vango-dev/hyperoop/pkg/action"
	"github.com/vango-dev/hyperoop/pkg/dom"
	"github.com/vango-dev/hyperoop/pkg/history"
	"github.com/vango-dev/hyperoop/pkg/render"
	"github.com/vango-dev/hyperoop/pkg/state"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

// =============================================================================
// Tree description (re-export from pkg/vdom)
// =============================================================================

// VNode is one node of a virtual tree.
type VNode = vdom.VNode

// Props holds the attributes of an element node.
type Props = vdom.Props

// Lazy is a deferred tree: a function evaluated at render time.
type Lazy = vdom.Lazy

// Component builds a tree from props and children.
type Component = vdom.Component

// LazyComponent builds a lazy tree from props and children.
type LazyComponent = vdom.LazyComponent

// H builds a node. name is a tag, a Component or a LazyComponent. Children
// may be nodes, strings, numbers, nil or slices of those.
//
// Example:
//
//	hyperoop.H("ul", nil,
//	    hyperoop.H("li", hyperoop.Props{"key": 1}, "one"),
//	    hyperoop.H("li", hyperoop.Props{"key": 2}, "two"),
//	)
func H(name any, props Props, children ...any) *VNode {
	return vdom.H(name, props, children...)
}

// =============================================================================
// State and actions (re-export from pkg/state, pkg/action, pkg/history)
// =============================================================================

// Map is a plain state object.
type Map = state.Map

// Actions owns one piece of reactive state.
type Actions = action.Actions

// Log is a bounded undo/redo history.
type Log = history.Log

// WithHistoryDepth gives a container its own history of the given depth.
// Zero or less is unbounded.
var WithHistoryDepth = action.WithHistoryDepth

// WithHistory shares an existing history log.
var WithHistory = action.WithHistory

// New creates an action container over initial.
func New(initial Map, opts ...action.Option) *Actions {
	return action.New(initial, opts...)
}

// NewSub creates a container that renders through parent and records into
// parent's history.
func NewSub(initial Map, parent action.Parent) *Actions {
	return action.NewSub(initial, parent)
}

// View binds fn to acts and returns it as a lazy view.
func View(acts *Actions, fn func(a *Actions) *VNode) Lazy {
	return func() *VNode {
		return fn(acts)
	}
}

// =============================================================================
// Rendering (re-export from pkg/render)
// =============================================================================

// Renderer attaches a view to a DOM container.
type Renderer = render.Renderer

// Option configures a Renderer.
type Option = render.Option

var (
	// WithScheduler sets where render tasks are posted.
	WithScheduler = render.WithScheduler

	// WithLogger sets the renderer's logger.
	WithLogger = render.WithLogger

	// WithMetrics records render passes.
	WithMetrics = render.WithMetrics

	// WithErrorHandler receives errors from scheduled passes.
	WithErrorHandler = render.WithErrorHandler

	// WithAfterRender runs after every pass.
	WithAfterRender = render.WithAfterRender
)

// Init attaches view to container and schedules the first render. actions
// may be nil for a static view.
func Init(container dom.Element, view Lazy, actions render.ActionInitializer, opts ...Option) *Renderer {
	if a, ok := actions.(*Actions); ok && a == nil {
		actions = nil
	}
	return render.Init(container, view, actions, opts...)
}

// HTML renders node to markup without a DOM.
func HTML(node *VNode) (string, error) {
	return render.HTML(node)
}
