// Package memdom is an in-memory implementation of the dom interfaces.
//
// It models the subset of the browser DOM the renderer relies on: element
// and text nodes, ordered attributes, reflected and live properties, inline
// style declarations and bubbling event dispatch. Trees serialise to markup
// with InnerHTML/OuterHTML and can be built from markup with SetInnerHTML,
// which makes memdom suitable for headless rendering, server-side snapshots
// and recycling tests.
//
// A memdom tree is not safe for concurrent use. Drive it from the same loop
// that runs the renderer.
package memdom
