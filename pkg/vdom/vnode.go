package vdom

import "fmt"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <button>, etc.
	KindText                 // Plain text node
	KindLazy                 // Deferred node, resolved by the renderer
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindLazy:
		return "Lazy"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes, event handlers and lifecycle hooks
	Children []*VNode // Child nodes
	Key      string   // Reconciliation key, empty when absent
	Text     string   // For KindText
	Lazy     Lazy     // For KindLazy
}

// Props holds attributes, event handlers and lifecycle hooks.
type Props map[string]any

// Lazy produces a node on demand.
type Lazy func() *VNode

// Component renders props and flattened children to a node.
type Component func(props Props, children []*VNode) *VNode

// LazyComponent renders props and flattened children to a lazy node.
type LazyComponent func(props Props, children []*VNode) Lazy

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // func(dom.Event), func() or dom.EventListener
}

// IsElement reports whether v is an element node.
func (v *VNode) IsElement() bool {
	return v != nil && v.Kind == KindElement
}

// IsText reports whether v is a text node.
func (v *VNode) IsText() bool {
	return v != nil && v.Kind == KindText
}

// NodeName is the name two nodes must share to be patched in place: the tag
// for elements and "#text" for text leaves.
func (v *VNode) NodeName() string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case KindElement:
		return v.Tag
	case KindText:
		return "#text"
	default:
		return ""
	}
}

// Resolve follows lazy nodes until a concrete node is produced. A nil result
// resolves to an empty text node.
func Resolve(v *VNode) *VNode {
	for v != nil && v.Kind == KindLazy {
		if v.Lazy == nil {
			return Text("")
		}
		v = v.Lazy()
	}
	if v == nil {
		return Text("")
	}
	return v
}

// ResolveLazy evaluates a lazy view and resolves the result.
func ResolveLazy(l Lazy) *VNode {
	if l == nil {
		return Text("")
	}
	return Resolve(l())
}

// String returns a compact debug form such as <li key="a">[2].
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindText:
		return fmt.Sprintf("%q", v.Text)
	case KindLazy:
		return "<lazy>"
	}
	if v.Key != "" {
		return fmt.Sprintf("<%s key=%q>[%d]", v.Tag, v.Key, len(v.Children))
	}
	return fmt.Sprintf("<%s>[%d]", v.Tag, len(v.Children))
}
