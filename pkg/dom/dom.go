// Package dom describes the DOM capability the renderer consumes.
//
// The renderer never talks to a concrete DOM. It creates, moves and removes
// nodes, sets attributes and properties, edits inline styles and registers
// event listeners through the interfaces in this package. Package memdom
// provides an in-memory implementation used for headless rendering, the
// preview server and tests; a WebAssembly build can back the same interfaces
// with syscall/js.
package dom

import (
	"strings"
	"unicode"
)

// SVGNamespace is the namespace URI for SVG elements.
const SVGNamespace = "http://www.w3.org/2000/svg"

// HTMLNamespace is the namespace URI for HTML elements.
const HTMLNamespace = "http://www.w3.org/1999/xhtml"

// NodeType mirrors the DOM nodeType constants.
type NodeType int

const (
	ElementNode NodeType = 1
	TextNode    NodeType = 3
)

// Node is any node in a document tree.
type Node interface {
	NodeType() NodeType

	// NodeName is the upper-cased tag for HTML elements, the tag as written
	// for foreign (SVG) elements, and "#text" for text nodes.
	NodeName() string

	NodeValue() string
	SetNodeValue(value string)
	TextContent() string

	ParentNode() Node
	OwnerDocument() Document

	// ChildNodes returns a snapshot of the node's children.
	ChildNodes() []Node

	// InsertBefore inserts child before ref, or appends it when ref is nil.
	// A child already in a tree is moved.
	InsertBefore(child, ref Node) Node
	AppendChild(child Node) Node
	RemoveChild(child Node) Node
}

// Element is a node that carries attributes, properties, style and listeners.
type Element interface {
	Node

	NamespaceURI() string

	GetAttribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	// HasProperty reports whether name is a live DOM property of the element
	// (the equivalent of `name in element`).
	HasProperty(name string) bool
	Property(name string) any
	SetProperty(name string, value any)

	Style() Style

	AddEventListener(eventType string, listener EventListener)
	RemoveEventListener(eventType string, listener EventListener)
}

// Style is an element's inline style declaration.
type Style interface {
	CSSText() string
	SetCSSText(text string)

	// SetProperty sets a CSS property by its CSS name ("background-color",
	// "--accent"). An empty value removes the property.
	SetProperty(name, value string)

	// Set sets a property by its script name ("backgroundColor"). An empty
	// value removes the property.
	Set(name, value string)

	Get(name string) string
}

// Event is a dispatched DOM event.
type Event interface {
	Type() string
	Target() Node
	CurrentTarget() Element
	StopPropagation()
}

// EventListener receives events. Implementations must be comparable so that
// the same listener can be removed again.
type EventListener interface {
	HandleEvent(e Event)
}

// Document creates nodes.
type Document interface {
	CreateElement(tag string) Element
	CreateElementNS(namespace, tag string) Element
	CreateTextNode(text string) Node
}

// FirstElementChild returns the first child of n that is an element.
func FirstElementChild(n Node) Element {
	if n == nil {
		return nil
	}
	for _, c := range n.ChildNodes() {
		if el, ok := c.(Element); ok && c.NodeType() == ElementNode {
			return el
		}
	}
	return nil
}

// ChildAt returns the i-th child of n, or nil when out of range.
func ChildAt(n Node, i int) Node {
	if n == nil || i < 0 {
		return nil
	}
	children := n.ChildNodes()
	if i >= len(children) {
		return nil
	}
	return children[i]
}

// CSSName converts a script style property name to its CSS form:
// backgroundColor -> background-color, WebkitTransition -> -webkit-transition,
// cssFloat -> float. Names starting with "-" are returned unchanged.
func CSSName(name string) string {
	if strings.HasPrefix(name, "-") {
		return name
	}
	if name == "cssFloat" {
		return "float"
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
