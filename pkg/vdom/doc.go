// Package vdom provides the node descriptions consumed by the renderer.
//
// A VNode describes one element or text leaf for a single render pass. Trees
// are rebuilt from scratch on every pass and reconciled against the previous
// one by package render; only a key ties a node to a DOM element across passes.
//
// # Building trees
//
// H is the tree construction factory. It takes a name (tag string or
// component function), an optional Props map and any number of children:
//
//	H("ul", Props{"class": "todo"},
//	    Range(items, func(it Item, _ int) *VNode {
//	        return H("li", Props{"key": it.ID}, it.Text)
//	    }),
//	)
//
// Children are flattened depth-first. Nested slices are expanded in place,
// nil and booleans are dropped, strings and numbers become text nodes.
//
// The element factories (Div, Span, Button, ...) accept the same children plus
// Attr, []Attr and EventHandler values, mirroring H for code that prefers
// typed helpers:
//
//	Button(Class("up"), OnClick(func() { counter.Up() }), "+")
//
// # Lazy nodes
//
// A Lazy is a function returning a VNode, evaluated by the renderer right
// before use so that it reads current state. Components that return a Lazy
// (LazyComponent) produce lazy nodes from H.
//
// # Lifecycle
//
// The props oncreate, onupdate, onremove and ondestroy hold lifecycle hooks
// (see CreateHook and friends). Every other on* prop is an event handler.
package vdom
