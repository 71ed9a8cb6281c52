package memdom

import (
	"strings"

	"github.com/vango-dev/hyperoop/pkg/dom"
)

// treeNode is implemented by every memdom node.
type treeNode interface {
	dom.Node
	parentElement() *Element
	setParent(p *Element)
}

// Document owns nodes and a body element.
type Document struct {
	body *Element
}

// NewDocument creates an empty document with a body element.
func NewDocument() *Document {
	d := &Document{}
	d.body = d.newElement(dom.HTMLNamespace, "body")
	return d
}

// Body returns the document's body element.
func (d *Document) Body() *Element {
	return d.body
}

// CreateElement creates an HTML element. The tag is lower-cased.
func (d *Document) CreateElement(tag string) dom.Element {
	return d.newElement(dom.HTMLNamespace, strings.ToLower(tag))
}

// CreateElementNS creates an element in the given namespace.
func (d *Document) CreateElementNS(namespace, tag string) dom.Element {
	if namespace == dom.HTMLNamespace {
		tag = strings.ToLower(tag)
	}
	return d.newElement(namespace, tag)
}

// CreateTextNode creates a text node.
func (d *Document) CreateTextNode(text string) dom.Node {
	return &Text{doc: d, data: text}
}

func (d *Document) newElement(namespace, tag string) *Element {
	return &Element{
		doc: d,
		ns:  namespace,
		tag: tag,
	}
}

// Text is a text node.
type Text struct {
	doc    *Document
	parent *Element
	data   string
}

func (t *Text) NodeType() dom.NodeType { return dom.TextNode }
func (t *Text) NodeName() string { return "#text" }
func (t *Text) NodeValue() string { return t.data }
func (t *Text) SetNodeValue(value string) { t.data = value }
func (t *Text) TextContent() string { return t.data }
func (t *Text) OwnerDocument() dom.Document { return t.doc }
func (t *Text) ChildNodes() []dom.Node { return nil }
func (t *Text) parentElement() *Element { return t.parent }
func (t *Text) setParent(p *Element) { t.parent = p }

// ParentNode returns the parent element, or nil when detached.
func (t *Text) ParentNode() dom.Node {
	if t.parent == nil {
		return nil
	}
	return t.parent
}

// InsertBefore panics: text nodes cannot have children.
func (t *Text) InsertBefore(child, ref dom.Node) dom.Node {
	panic("memdom: text nodes cannot have children")
}

// AppendChild panics: text nodes cannot have children.
func (t *Text) AppendChild(child dom.Node) dom.Node {
	panic("memdom: text nodes cannot have children")
}

// RemoveChild panics: text nodes cannot have children.
func (t *Text) RemoveChild(child dom.Node) dom.Node {
	panic("memdom: text nodes cannot have children")
}

type attribute struct {
	name  string
	value string
}

// Element is an element node.
type Element struct {
	doc       *Document
	parent    *Element
	ns        string
	tag       string
	attrs     []attribute
	props     map[string]any
	style     *Style
	listeners map[string][]dom.EventListener
	children  []dom.Node
}

// NodeType returns dom.ElementNode.
func (e *Element) NodeType() dom.NodeType { return dom.ElementNode }

// NodeName returns the upper-cased tag for HTML elements and the tag as
// written for other namespaces.
func (e *Element) NodeName() string {
	if e.ns == dom.HTMLNamespace {
		return strings.ToUpper(e.tag)
	}
	return e.tag
}

// TagName returns the tag as it was created.
func (e *Element) TagName() string { return e.tag }

func (e *Element) NamespaceURI() string { return e.ns }
func (e *Element) NodeValue() string { return "" }
func (e *Element) SetNodeValue(string) {}
func (e *Element) OwnerDocument() dom.Document { return e.doc }
func (e *Element) parentElement() *Element { return e.parent }
func (e *Element) setParent(p *Element) { e.parent = p }

// ParentNode returns the parent element, or nil when detached.
func (e *Element) ParentNode() dom.Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// TextContent concatenates the text of all descendants.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	for _, c := range e.children {
		switch n := c.(type) {
		case *Text:
			b.WriteString(n.data)
		case *Element:
			n.writeText(b)
		}
	}
}

// ChildNodes returns a snapshot of the children.
func (e *Element) ChildNodes() []dom.Node {
	out := make([]dom.Node, len(e.children))
	copy(out, e.children)
	return out
}

// Children returns the element children only.
func (e *Element) Children() []*Element {
	var out []*Element
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// InsertBefore inserts child before ref. A nil ref, or a ref that is not a
// child of e, appends. A child that already has a parent is moved.
func (e *Element) InsertBefore(child, ref dom.Node) dom.Node {
	c := asTreeNode(child)
	if !isNil(ref) && ref == child {
		return child
	}
	if p := c.parentElement(); p != nil {
		p.detach(c)
	}

	idx := len(e.children)
	if !isNil(ref) {
		if i := e.indexOf(ref); i >= 0 {
			idx = i
		}
	}

	e.children = append(e.children, nil)
	copy(e.children[idx+1:], e.children[idx:])
	e.children[idx] = c
	c.setParent(e)
	return child
}

// AppendChild appends child, moving it if it already has a parent.
func (e *Element) AppendChild(child dom.Node) dom.Node {
	return e.InsertBefore(child, nil)
}

// RemoveChild detaches child. Removing a node that is not a child of e is a
// no-op.
func (e *Element) RemoveChild(child dom.Node) dom.Node {
	if isNil(child) {
		return child
	}
	c := asTreeNode(child)
	if c.parentElement() == e {
		e.detach(c)
	}
	return child
}

func (e *Element) detach(c treeNode) {
	if i := e.indexOf(c); i >= 0 {
		e.children = append(e.children[:i], e.children[i+1:]...)
	}
	c.setParent(nil)
}

func (e *Element) indexOf(n dom.Node) int {
	for i, c := range e.children {
		if c == n {
			return i
		}
	}
	return -1
}

// Attributes returns the attribute names in insertion order.
func (e *Element) Attributes() []string {
	names := make([]string, len(e.attrs))
	for i, a := range e.attrs {
		names[i] = a.name
	}
	return names
}

// GetAttribute returns the attribute value and whether it is present.
func (e *Element) GetAttribute(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// SetAttribute sets an attribute, keeping its position if it exists.
func (e *Element) SetAttribute(name, value string) {
	if name == "style" {
		e.Style()
		e.style.parse(value)
	}
	e.setAttr(name, value)
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	if name == "style" && e.style != nil {
		e.style.decls = nil
	}
	e.removeAttr(name)
}

func (e *Element) setAttr(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].name == name {
			e.attrs[i].value = value
			return
		}
	}
	e.attrs = append(e.attrs, attribute{name: name, value: value})
}

func (e *Element) removeAttr(name string) {
	for i, a := range e.attrs {
		if a.name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

// Style returns the element's inline style declaration.
func (e *Element) Style() dom.Style {
	if e.style == nil {
		e.style = &Style{owner: e}
	}
	return e.style
}

// QuerySelector finds the first descendant matching a simple selector:
// "#id", ".class", "tag" or "tag.class".
func (e *Element) QuerySelector(selector string) *Element {
	m := parseSelector(selector)
	var found *Element
	e.walk(func(el *Element) bool {
		if el != e && m.matches(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// QuerySelectorAll finds every descendant matching a simple selector.
func (e *Element) QuerySelectorAll(selector string) []*Element {
	m := parseSelector(selector)
	var out []*Element
	e.walk(func(el *Element) bool {
		if el != e && m.matches(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			if !el.walk(fn) {
				return false
			}
		}
	}
	return true
}

type selector struct {
	tag   string
	id    string
	class string
}

func parseSelector(s string) selector {
	var sel selector
	switch {
	case strings.HasPrefix(s, "#"):
		sel.id = s[1:]
	case strings.HasPrefix(s, "."):
		sel.class = s[1:]
	default:
		if i := strings.IndexByte(s, '.'); i >= 0 {
			sel.tag, sel.class = s[:i], s[i+1:]
		} else {
			sel.tag = s
		}
	}
	return sel
}

func (s selector) matches(el *Element) bool {
	if s.tag != "" && !strings.EqualFold(s.tag, el.tag) {
		return false
	}
	if s.id != "" {
		if id, _ := el.GetAttribute("id"); id != s.id {
			return false
		}
	}
	if s.class != "" {
		cls, _ := el.GetAttribute("class")
		found := false
		for _, c := range strings.Fields(cls) {
			if c == s.class {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func asTreeNode(n dom.Node) treeNode {
	t, ok := n.(treeNode)
	if !ok || isNil(n) {
		panic("memdom: node does not belong to a memdom document")
	}
	return t
}

func isNil(n dom.Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Element:
		return v == nil
	case *Text:
		return v == nil
	}
	return false
}
