package render

import (
	"reflect"
	"sort"
	"sync"

	"github.com/vango-dev/hyperoop/internal/errors"
	"github.com/vango-dev/hyperoop/pkg/dom"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

// keyedChild pairs an old keyed node with its DOM node.
type keyedChild struct {
	el   dom.Node
	node *vdom.VNode
}

// patch reconciles el, which displays old, into next and returns the DOM node
// now displaying next.
func (r *Renderer) patch(parent dom.Node, el dom.Node, old, next *vdom.VNode, svg bool) (dom.Node, error) {
	if next == old {
		return el, nil
	}
	if next == nil || next.Kind == vdom.KindLazy {
		return nil, errors.New("E003").WithDetailf("patching %v into <%s>", next, parent.NodeName())
	}

	if old == nil || old.NodeName() != next.NodeName() {
		return r.patchNewNode(parent, el, old, next, svg)
	}

	switch {
	case old.IsText() && next.IsText():
		if isNilNode(el) {
			return nil, errors.New("E002").WithDetailf("text %q", old.Text)
		}
		el.SetNodeValue(next.Text)
		return el, nil

	case old.IsElement() && next.IsElement():
		elem, ok := el.(dom.Element)
		if !ok || isNilNode(el) {
			return nil, errors.New("E002").WithDetailf("element %v", old)
		}
		return r.patchChildren(elem, old, next, svg)
	}

	return nil, errors.New("E001").WithDetailf("old %s %v, new %s %v", old.Kind, old, next.Kind, next)
}

// patchNewNode builds next from scratch, inserts it before el and removes el.
func (r *Renderer) patchNewNode(parent dom.Node, el dom.Node, old, next *vdom.VNode, svg bool) (dom.Node, error) {
	created, err := r.createElement(next, svg)
	if err != nil {
		return nil, err
	}
	parent.InsertBefore(created, nilIfEmpty(el))

	if old != nil {
		r.removeElement(parent, el, old)
	}
	return created, nil
}

// createElement builds the DOM subtree for node. Lazy children are resolved
// and written back into node so the next pass diffs against them.
func (r *Renderer) createElement(node *vdom.VNode, svg bool) (dom.Node, error) {
	doc := r.document()

	switch node.Kind {
	case vdom.KindText:
		r.metrics.create()
		return doc.CreateTextNode(node.Text), nil
	case vdom.KindLazy:
		return nil, errors.New("E003").WithDetail("creating a DOM node")
	}

	var el dom.Element
	if svg = svg || node.Tag == "svg"; svg {
		el = doc.CreateElementNS(dom.SVGNamespace, node.Tag)
	} else {
		el = doc.CreateElement(node.Tag)
	}

	if hook := vdom.CreateHookOf(node.Props[vdom.HookCreate]); hook != nil {
		r.lifecycle = append(r.lifecycle, func() { hook(el) })
	}

	for i, child := range node.Children {
		child = vdom.Resolve(child)
		node.Children[i] = child
		c, err := r.createElement(child, svg)
		if err != nil {
			return nil, err
		}
		el.AppendChild(c)
	}

	for _, name := range sortedKeys(node.Props) {
		r.updateAttribute(el, name, node.Props[name], nil, svg)
	}

	r.metrics.create()
	return el, nil
}

// patchChildren updates el's props and reconciles its children, moving keyed
// children instead of recreating them.
func (r *Renderer) patchChildren(el dom.Element, old, next *vdom.VNode, svg bool) (dom.Node, error) {
	svg = svg || next.Tag == "svg"
	r.updateElement(el, old.Props, next.Props, svg)

	oldChildren := old.Children
	children := next.Children

	domChildren := el.ChildNodes()
	oldElements := make([]dom.Node, len(oldChildren))
	oldKeyed := make(map[string]keyedChild)
	for i, c := range oldChildren {
		if i < len(domChildren) {
			oldElements[i] = domChildren[i]
		}
		if key := keyOf(c); key != "" {
			oldKeyed[key] = keyedChild{el: oldElements[i], node: c}
		}
	}

	newKeyed := make(map[string]bool)
	i, k := 0, 0

	for k < len(children) {
		oldKey := keyOf(childAt(oldChildren, i))
		children[k] = vdom.Resolve(children[k])
		newKey := keyOf(children[k])

		if oldKey != "" && newKeyed[oldKey] {
			i++
			continue
		}

		if newKey != "" && newKey == keyOf(childAt(oldChildren, i+1)) {
			if oldKey == "" {
				r.removeElement(el, nodeAt(oldElements, i), childAt(oldChildren, i))
			}
			i++
			continue
		}

		if newKey == "" || r.recycling {
			if oldKey == "" {
				if _, err := r.patch(el, nodeAt(oldElements, i), childAt(oldChildren, i), children[k], svg); err != nil {
					return nil, err
				}
				k++
			}
			i++
			continue
		}

		keyed, found := oldKeyed[newKey]
		var err error
		switch {
		case oldKey == newKey:
			_, err = r.patch(el, keyed.el, keyed.node, children[k], svg)
			i++
		case found && !isNilNode(keyed.el):
			el.InsertBefore(keyed.el, nilIfEmpty(nodeAt(oldElements, i)))
			_, err = r.patch(el, keyed.el, keyed.node, children[k], svg)
		default:
			_, err = r.patch(el, nodeAt(oldElements, i), nil, children[k], svg)
		}
		if err != nil {
			return nil, err
		}

		newKeyed[newKey] = true
		k++
	}

	for ; i < len(oldChildren); i++ {
		if keyOf(oldChildren[i]) == "" {
			r.removeElement(el, oldElements[i], oldChildren[i])
		}
	}

	for _, c := range oldChildren {
		key := keyOf(c)
		if key == "" || newKeyed[key] {
			continue
		}
		if keyed, ok := oldKeyed[key]; ok {
			delete(oldKeyed, key)
			r.removeElement(el, keyed.el, keyed.node)
		}
	}

	return el, nil
}

// removeElement detaches el, first giving its onremove hook the chance to
// defer the removal.
func (r *Renderer) removeElement(parent dom.Node, el dom.Node, node *vdom.VNode) {
	if isNilNode(el) {
		return
	}

	done := func() {
		parent.RemoveChild(r.removeChildren(el, node))
		r.metrics.remove()
	}

	if node.IsElement() {
		if hook := vdom.RemoveHookOf(node.Props[vdom.HookRemove]); hook != nil {
			if elem, ok := el.(dom.Element); ok {
				var once sync.Once
				hook(elem, func() { once.Do(done) })
				return
			}
		}
	}
	done()
}

// removeChildren runs ondestroy for el's descendants and then el, and drops
// their event handlers.
func (r *Renderer) removeChildren(el dom.Node, node *vdom.VNode) dom.Node {
	if !node.IsElement() {
		return el
	}

	kids := el.ChildNodes()
	for i, child := range node.Children {
		if i < len(kids) {
			r.removeChildren(kids[i], child)
		}
	}

	if elem, ok := el.(dom.Element); ok {
		if hook := vdom.DestroyHookOf(node.Props[vdom.HookDestroy]); hook != nil {
			hook(elem)
		}
		delete(r.events, elem)
	}
	return el
}

// elementToVNode rebuilds a tree from existing markup for recycling.
func elementToVNode(n dom.Node) *vdom.VNode {
	if n.NodeType() == dom.TextNode {
		return vdom.Text(n.NodeValue())
	}
	v := &vdom.VNode{
		Kind:  vdom.KindElement,
		Tag:   lowerASCII(n.NodeName()),
		Props: vdom.Props{},
	}
	for _, c := range n.ChildNodes() {
		v.Children = append(v.Children, elementToVNode(c))
	}
	return v
}

func keyOf(v *vdom.VNode) string {
	if v == nil || v.Kind != vdom.KindElement {
		return ""
	}
	return v.Key
}

func childAt(nodes []*vdom.VNode, i int) *vdom.VNode {
	if i < 0 || i >= len(nodes) {
		return nil
	}
	return nodes[i]
}

func nodeAt(nodes []dom.Node, i int) dom.Node {
	if i < 0 || i >= len(nodes) {
		return nil
	}
	return nodes[i]
}

// isNilNode reports whether n is nil or a typed nil pointer.
func isNilNode(n dom.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// nilIfEmpty normalises typed nils to an untyped nil reference.
func nilIfEmpty(n dom.Node) dom.Node {
	if isNilNode(n) {
		return nil
	}
	return n
}

func sortedKeys(props vdom.Props) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func unionKeys(a, b vdom.Props) []string {
	seen := make(map[string]bool, len(a)+len(b))
	keys := make([]string, 0, len(a)+len(b))
	for _, m := range []vdom.Props{a, b} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
