package vdom

import (
	"fmt"

	"github.com/vango-dev/hyperoop/internal/identity"
)

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// If returns node when cond holds and nil otherwise. A nil child is skipped.
func If(cond bool, node *VNode) *VNode {
	if cond {
		return node
	}
	return nil
}

// Range maps items to nodes, dropping nil results.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); node != nil {
			out = append(out, node)
		}
	}
	return out
}

// Keyed maps items to element nodes keyed by key(item), so reordering the
// items moves the existing elements instead of rebuilding them.
func Keyed[T any](items []T, key func(T) any, fn func(T) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for _, item := range items {
		node := fn(item)
		if node == nil {
			continue
		}
		if node.Kind == KindElement {
			k := keyOf(key(item))
			if node.Props == nil {
				node.Props = Props{}
			}
			node.Props["key"] = k
			node.Key = k
		}
		out = append(out, node)
	}
	return out
}

// Memo caches a subtree. While its dependencies stay the same, Render
// returns the very node it returned last time, and the patch engine skips
// an identical node without looking inside it.
//
//	var header vdom.Memo
//	view := func() *vdom.VNode {
//	    return vdom.Div(header.Render(buildHeader, title), body())
//	}
type Memo struct {
	deps []any
	node *VNode
}

// Render returns the cached node, or calls build when any dependency
// changed. Dependencies compare like state values: maps and slices by
// reference, functions by closure.
func (m *Memo) Render(build func() *VNode, deps ...any) *VNode {
	if m.node != nil && sameDeps(m.deps, deps) {
		return m.node
	}
	m.deps = append(m.deps[:0], deps...)
	m.node = build()
	return m.node
}

// Reset drops the cached node.
func (m *Memo) Reset() {
	m.deps = nil
	m.node = nil
}

func sameDeps(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !identity.Same(a[i], b[i]) {
			return false
		}
	}
	return true
}
